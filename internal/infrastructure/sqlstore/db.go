// Package sqlstore implementa los repositorios sobre database/sql + sqlx.
// Motor por defecto: SQLite en archivo (modernc.org/sqlite). Con DB_DRIVER=pgx
// se usa PostgreSQL a través de pgx/v5/stdlib.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/foodtruck-api/pkg/config"
)

// Querier es satisfecho por *sqlx.DB y *sqlx.Tx; los repositorios no distinguen si corren en transacción.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// DB conexión más el dialecto SQL en uso.
type DB struct {
	*sqlx.DB
	dialect Dialect
	path    string // archivo SQLite; vacío en PostgreSQL
}

// Dialect dialecto SQL activo.
func (db *DB) Dialect() Dialect { return db.dialect }

// Path ruta del archivo SQLite.
func (db *DB) Path() string { return db.path }

// Open abre la base según la configuración y verifica la conexión.
func Open(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	if cfg.IsSQLite() {
		return OpenSQLite(ctx, cfg.Path)
	}
	return OpenPostgres(ctx, cfg.DatabaseURL)
}

// OpenSQLite abre (o crea) el archivo SQLite. ":memory:" crea una base en memoria.
// Se usa una única conexión: SQLite serializa las escrituras y así las
// transacciones nunca compiten por el bloqueo del archivo.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	db := &DB{DB: sqlx.NewDb(sqlDB, "sqlite3"), dialect: SQLite, path: path}
	db.MapperFunc(snakeCase)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// OpenPostgres abre PostgreSQL mediante pgx/stdlib registrando el codec de shopspring/decimal.
func OpenPostgres(ctx context.Context, databaseURL string) (*DB, error) {
	connCfg, err := pgx.ParseConfig(databaseURLWithIPv4(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connCfg, stdlib.OptionAfterConnect(func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}))
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	db := &DB{DB: sqlx.NewDb(sqlDB, "pgx"), dialect: Postgres}
	db.MapperFunc(snakeCase)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}

// databaseURLWithIPv4 reemplaza el hostname por su IPv4 si existe (contenedores sin IPv6).
func databaseURLWithIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Host == "" {
		return databaseURL
	}
	host := u.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return databaseURL
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			u.Host = net.JoinHostPort(ip.String(), port)
			return u.String()
		}
	}
	return databaseURL
}

// snakeCase convierte nombres de campo Go a columnas: IngredientID -> ingredient_id.
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prev := runes[i-1]
			prevLower := (prev >= 'a' && prev <= 'z') || (prev >= '0' && prev <= '9')
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || (prev >= 'A' && prev <= 'Z' && nextLower) {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
