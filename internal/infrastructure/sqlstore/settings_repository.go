package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var (
	_ repository.SettingsRepository     = (*SettingsRepo)(nil)
	_ repository.BusinessInfoRepository = (*BusinessInfoRepo)(nil)
)

// SettingsRepo pares clave/valor en la tabla settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el repositorio.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingColumns = `key, COALESCE(value, '') AS value, updated_at`

func (r *SettingsRepo) All(ctx context.Context) ([]*entity.Setting, error) {
	var out []*entity.Setting
	if err := r.q.SelectContext(ctx, &out, `SELECT `+settingColumns+` FROM settings ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.q.GetContext(ctx, &s, r.q.Rebind(`SELECT `+settingColumns+` FROM settings WHERE key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza el valor (ON CONFLICT funciona en SQLite y PostgreSQL).
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		s.Key, s.Value, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) (bool, error) {
	ok, err := execAffected(ctx, r.q, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	return ok, nil
}

// BusinessInfoRepo fila única (id = 1) de business_info.
type BusinessInfoRepo struct {
	q Querier
}

// NewBusinessInfoRepository construye el repositorio.
func NewBusinessInfoRepository(q Querier) *BusinessInfoRepo {
	return &BusinessInfoRepo{q: q}
}

const businessInfoID = 1

func (r *BusinessInfoRepo) Get(ctx context.Context) (*entity.BusinessInfo, error) {
	var info entity.BusinessInfo
	err := r.q.GetContext(ctx, &info, r.q.Rebind(`
		SELECT COALESCE(business_name, '') AS business_name, COALESCE(phone, '') AS phone,
			COALESCE(email, '') AS email, COALESCE(website, '') AS website, COALESCE(address, '') AS address,
			COALESCE(facebook, '') AS facebook, COALESCE(instagram, '') AS instagram,
			COALESCE(logo_path, '') AS logo_path, COALESCE(default_margin, 30) AS default_margin, updated_at
		FROM business_info WHERE id = ?`), businessInfoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get business_info: %w", err)
	}
	return &info, nil
}

func (r *BusinessInfoRepo) Save(ctx context.Context, info *entity.BusinessInfo) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO business_info (id, business_name, phone, email, website, address, facebook, instagram, logo_path, default_margin, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			business_name = excluded.business_name, phone = excluded.phone, email = excluded.email,
			website = excluded.website, address = excluded.address, facebook = excluded.facebook,
			instagram = excluded.instagram, logo_path = excluded.logo_path,
			default_margin = excluded.default_margin, updated_at = excluded.updated_at`),
		businessInfoID, info.BusinessName, info.Phone, info.Email, info.Website, info.Address,
		info.Facebook, info.Instagram, info.LogoPath, info.DefaultMargin, info.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save business_info: %w", err)
	}
	return nil
}
