package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var _ repository.FileRepository = (*FileRepo)(nil)

// FileRepo metadatos de archivos en la tabla files.
type FileRepo struct {
	q Querier
}

// NewFileRepository construye el repositorio.
func NewFileRepository(q Querier) *FileRepo {
	return &FileRepo{q: q}
}

const fileColumns = `id, COALESCE(filename, '') AS filename, COALESCE(original_name, '') AS original_name,
	COALESCE(path, '') AS path, COALESCE(mime_type, '') AS mime_type, COALESCE(size, 0) AS size,
	COALESCE(category, '') AS category, COALESCE(description, '') AS description,
	COALESCE(related_type, '') AS related_type, related_id, uploaded_at`

func (r *FileRepo) Create(ctx context.Context, f *entity.StoredFile) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO files (filename, original_name, path, mime_type, size, category, description, related_type, related_id, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Filename, f.OriginalName, f.Path, f.MimeType, f.Size, f.Category, f.Description, f.RelatedType, f.RelatedID, f.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	f.ID = id
	return nil
}

func (r *FileRepo) GetByID(ctx context.Context, id int64) (*entity.StoredFile, error) {
	var f entity.StoredFile
	err := r.q.GetContext(ctx, &f, r.q.Rebind(`SELECT `+fileColumns+` FROM files WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}

func (r *FileRepo) List(ctx context.Context, category string) ([]*entity.StoredFile, error) {
	query := `SELECT ` + fileColumns + ` FROM files`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY uploaded_at DESC, id DESC`

	var out []*entity.StoredFile
	if err := r.q.SelectContext(ctx, &out, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return out, nil
}

func (r *FileRepo) Update(ctx context.Context, f *entity.StoredFile) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE files SET original_name = ?, category = ?, description = ?, related_type = ?, related_id = ?
		WHERE id = ?`),
		f.OriginalName, f.Category, f.Description, f.RelatedType, f.RelatedID, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

func (r *FileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := execAffected(ctx, r.q, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete file: %w", err)
	}
	return ok, nil
}
