package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/pkg/cache"
)

// DefaultMargin margen por defecto del negocio (%).
var DefaultMargin = decimal.NewFromInt(30)

// DefaultSettings valores que devuelve GET /api/settings cuando la clave no se ha guardado.
// Las listas van codificadas como arreglos JSON.
var DefaultSettings = map[string]string{
	"menuCategories":     `["Entree","Appetizer","Dessert","Sauce","Side","Beverage"]`,
	"supplierCategories": `["Food","Equipment","Supplies","Other"]`,
	"measurementUnits":   `["lb","oz","kg","g","cups","tbsp","tsp","liters","ml","pieces","pack"]`,
	"eventStatuses":      `["Interested","Applied","Accepted","Accepted & Paid","Rejected","Completed"]`,
	"fileCategories":     `["General","Event Contracts","Catering Contracts","Permits","Insurance","Marketing","Images","Receipts","Other"]`,
	"employeeRoles":      `["Cook","Cashier","Manager","Prep Cook","Server","Driver","Cleaner"]`,
	"theme":              "light",
}

// SettingsUseCase ajustes clave/valor y datos del negocio, ambos detrás de una
// caché que se invalida en cada escritura.
type SettingsUseCase struct {
	settings  repository.SettingsRepository
	info      repository.BusinessInfoRepository
	settingsC *cache.Singleton[map[string]string]
	infoC     *cache.Singleton[*entity.BusinessInfo]
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settings repository.SettingsRepository, info repository.BusinessInfoRepository) *SettingsUseCase {
	uc := &SettingsUseCase{settings: settings, info: info}
	uc.settingsC = cache.NewSingleton(uc.loadSettings)
	uc.infoC = cache.NewSingleton(info.Get)
	return uc
}

func (uc *SettingsUseCase) loadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := uc.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(DefaultSettings)+len(rows))
	for k, v := range DefaultSettings {
		out[k] = v
	}
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}

// All devuelve todos los ajustes con los valores por defecto aplicados.
func (uc *SettingsUseCase) All(ctx context.Context) (map[string]string, error) {
	m, err := uc.settingsC.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

// InvalidateAll descarta ambas cachés.
func (uc *SettingsUseCase) InvalidateAll() {
	uc.settingsC.Invalidate()
	uc.infoC.Invalidate()
}

// Get devuelve un ajuste.
func (uc *SettingsUseCase) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	m, err := uc.settingsC.Get(ctx)
	if err != nil {
		return nil, err
	}
	v, ok := m[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dto.SettingResponse{Key: key, Value: v}, nil
}

// Set guarda un ajuste.
func (uc *SettingsUseCase) Set(ctx context.Context, in dto.SettingRequest) (*dto.SettingResponse, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return nil, domain.Invalid("key", "es obligatorio")
	}
	value, err := settingValue(in.Value)
	if err != nil {
		return nil, err
	}
	defer uc.settingsC.Invalidate()
	if err := uc.settings.Upsert(ctx, &entity.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}); err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Key: key, Value: value}, nil
}

// SetBulk guarda varios ajustes. Devuelve el mapa completo resultante.
func (uc *SettingsUseCase) SetBulk(ctx context.Context, in map[string]any) (map[string]string, error) {
	now := time.Now().UTC()
	rows := make([]*entity.Setting, 0, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, domain.Invalid("key", "es obligatorio")
		}
		value, err := settingValue(v)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &entity.Setting{Key: key, Value: value, UpdatedAt: now})
	}
	for _, s := range rows {
		if err := uc.settings.Upsert(ctx, s); err != nil {
			uc.settingsC.Invalidate()
			return nil, err
		}
	}
	uc.settingsC.Invalidate()
	return uc.All(ctx)
}

// Delete elimina un ajuste guardado; la clave vuelve a su valor por defecto si lo tiene.
func (uc *SettingsUseCase) Delete(ctx context.Context, key string) error {
	defer uc.settingsC.Invalidate()
	ok, err := uc.settings.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func settingValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", domain.Invalid("value", "no se puede codificar")
	}
	return string(b), nil
}

// BusinessInfo devuelve los datos del negocio; sin fila guardada, valores vacíos y margen por defecto.
func (uc *SettingsUseCase) BusinessInfo(ctx context.Context) (*dto.BusinessInfoResponse, error) {
	info, err := uc.infoC.Get(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &dto.BusinessInfoResponse{DefaultMargin: DefaultMargin}, nil
	}
	return toBusinessInfoResponse(info), nil
}

// SaveBusinessInfo reemplaza los datos del negocio.
func (uc *SettingsUseCase) SaveBusinessInfo(ctx context.Context, in dto.BusinessInfoRequest) (*dto.BusinessInfoResponse, error) {
	margin := DefaultMargin
	if in.DefaultMargin != nil {
		margin = *in.DefaultMargin
	}
	if margin.IsNegative() || margin.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, domain.Invalid("default_margin", "debe estar entre 0 y 100")
	}
	info := &entity.BusinessInfo{
		BusinessName:  strings.TrimSpace(in.BusinessName),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Website:       strings.TrimSpace(in.Website),
		Address:       strings.TrimSpace(in.Address),
		Facebook:      strings.TrimSpace(in.Facebook),
		Instagram:     strings.TrimSpace(in.Instagram),
		LogoPath:      strings.TrimSpace(in.LogoPath),
		DefaultMargin: margin,
		UpdatedAt:     time.Now().UTC(),
	}
	defer uc.infoC.Invalidate()
	if err := uc.info.Save(ctx, info); err != nil {
		return nil, err
	}
	return toBusinessInfoResponse(info), nil
}

func toBusinessInfoResponse(info *entity.BusinessInfo) *dto.BusinessInfoResponse {
	updated := info.UpdatedAt
	return &dto.BusinessInfoResponse{
		BusinessName:  info.BusinessName,
		Phone:         info.Phone,
		Email:         info.Email,
		Website:       info.Website,
		Address:       info.Address,
		Facebook:      info.Facebook,
		Instagram:     info.Instagram,
		LogoPath:      info.LogoPath,
		DefaultMargin: info.DefaultMargin,
		UpdatedAt:     &updated,
	}
}
