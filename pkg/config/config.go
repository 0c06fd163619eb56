package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Auth    AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Drivers soportados por sqlstore.Open.
const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// DBConfig configuración de la base de datos.
// Con Driver "sqlite" se usa Path (archivo local); con "pgx" se usa DatabaseURL.
type DBConfig struct {
	Driver      string
	Path        string
	DatabaseURL string
}

// IsSQLite indica si la base es el archivo embebido.
func (c DBConfig) IsSQLite() bool {
	return c.Driver == "" || c.Driver == DriverSQLite
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP y del cliente estático.
type HTTPConfig struct {
	Host          string
	Port          int
	TLSCertFile   string
	TLSKeyFile    string
	StaticDir     string
	IndexHTMLPath string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig configuración de archivos subidos.
type StorageConfig struct {
	UploadDir         string
	MaxUploadBytes    int
	MaxRestoreBytes   int // tamaño máximo de una copia de seguridad a restaurar
	AllowedExtensions []string
}

// BodyLimit límite del cuerpo HTTP: cubre la mayor de las dos subidas más 1 MiB
// de margen para el resto del formulario.
func (c StorageConfig) BodyLimit() int {
	n := c.MaxUploadBytes
	if c.MaxRestoreBytes > n {
		n = c.MaxRestoreBytes
	}
	return n + 1<<20
}

// AuthConfig controla la protección de la API y el usuario administrador inicial.
type AuthConfig struct {
	Required      bool
	AdminUsername string
	AdminPassword string
}

var defaultAllowedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf",
	".doc", ".docx", ".xls", ".xlsx", ".csv", ".txt",
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_PATH, HTTP_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "foodtruck-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverSQLite)),
			Path:        getString(v, "DB_PATH", "foodtruck.db"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "foodtruck-api"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 3000),
			TLSCertFile:   getString(v, "TLS_CERT_FILE", "cert.pem"),
			TLSKeyFile:    getString(v, "TLS_KEY_FILE", "key.pem"),
			StaticDir:     getString(v, "STATIC_DIR", "web"),
			IndexHTMLPath: getString(v, "INDEX_HTML_PATH", "web/index.html"),
		},
		Storage: StorageConfig{
			UploadDir:         getString(v, "UPLOAD_DIR", "uploads"),
			MaxUploadBytes:    getInt(v, "UPLOAD_MAX_BYTES", 10<<20),
			MaxRestoreBytes:   getInt(v, "BACKUP_MAX_BYTES", 256<<20),
			AllowedExtensions: getList(v, "UPLOAD_ALLOWED_EXT", defaultAllowedExtensions),
		},
		Auth: AuthConfig{
			Required:      getBool(v, "AUTH_REQUIRED", true),
			AdminUsername: getString(v, "ADMIN_USERNAME", "admin"),
			AdminPassword: getString(v, "ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("config: DB_PATH vacío")
		}
	case DriverPgx:
		if c.DB.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL requerido con DB_DRIVER=pgx")
		}
	default:
		return fmt.Errorf("config: DB_DRIVER desconocido %q", c.DB.Driver)
	}
	if c.Auth.Required && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET requerido cuando AUTH_REQUIRED=true")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getList separa valores por coma (".jpg,.png").
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
