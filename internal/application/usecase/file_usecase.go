package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

// DefaultFileCategory categoría cuando el cliente no envía una.
const DefaultFileCategory = "General"

// FileUseCase archivos subidos: contenido en el FileStore, metadatos en la tabla files.
type FileUseCase struct {
	files repository.FileRepository
	store FileStore
	log   *logger.Logger
	now   func() time.Time
}

// NewFileUseCase construye el caso de uso.
func NewFileUseCase(files repository.FileRepository, store FileStore, log *logger.Logger) *FileUseCase {
	return &FileUseCase{
		files: files,
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Upload guarda el contenido y registra sus metadatos. Si el registro falla,
// el archivo en disco se borra.
func (uc *FileUseCase) Upload(ctx context.Context, in dto.UploadRequest, r io.Reader) (*dto.FileResponse, error) {
	if strings.TrimSpace(in.OriginalName) == "" {
		return nil, domain.Invalid("file", "archivo requerido")
	}
	saved, err := uc.store.Save(ctx, in.OriginalName, in.Size, r)
	if err != nil {
		return nil, err
	}
	f := &entity.StoredFile{
		Filename:     saved.Filename,
		OriginalName: filepath.Base(in.OriginalName),
		Path:         saved.Path,
		MimeType:     saved.MimeType,
		Size:         saved.Size,
		Category:     defaultString(in.Category, DefaultFileCategory),
		Description:  in.Description,
		RelatedType:  in.RelatedType,
		RelatedID:    in.RelatedID,
		UploadedAt:   uc.now(),
	}
	if err := uc.files.Create(ctx, f); err != nil {
		if rmErr := uc.store.Remove(saved.Filename); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("filename", saved.Filename).Msg("no se pudo borrar archivo huérfano")
		}
		return nil, err
	}
	uc.log.Info().Int64("file_id", f.ID).Str("filename", f.Filename).Int64("size", f.Size).Msg("archivo subido")
	return toFileResponse(f), nil
}

// Create registra metadatos de un archivo que ya está en disco.
func (uc *FileUseCase) Create(ctx context.Context, in dto.FileMetadataRequest) (*dto.FileResponse, error) {
	if strings.TrimSpace(in.Filename) == "" {
		return nil, domain.Invalid("filename", "requerido")
	}
	if strings.TrimSpace(in.Path) == "" {
		return nil, domain.Invalid("path", "requerido")
	}
	if in.Size < 0 {
		return nil, domain.Invalid("size", "no puede ser negativo")
	}
	f := &entity.StoredFile{
		Filename:     in.Filename,
		OriginalName: defaultString(in.OriginalName, in.Filename),
		Path:         in.Path,
		MimeType:     in.MimeType,
		Size:         in.Size,
		Category:     defaultString(in.Category, DefaultFileCategory),
		Description:  in.Description,
		RelatedType:  in.RelatedType,
		RelatedID:    in.RelatedID,
		UploadedAt:   uc.now(),
	}
	if err := uc.files.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFileResponse(f), nil
}

// List lista los archivos, opcionalmente de una categoría.
func (uc *FileUseCase) List(ctx context.Context, category string) ([]*dto.FileResponse, error) {
	list, err := uc.files.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFileResponse(f))
	}
	return out, nil
}

// Get obtiene los metadatos de un archivo.
func (uc *FileUseCase) Get(ctx context.Context, id int64) (*dto.FileResponse, error) {
	f, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFileResponse(f), nil
}

// Update edita nombre visible, categoría, descripción y relación. El contenido no cambia.
func (uc *FileUseCase) Update(ctx context.Context, id int64, in dto.FileMetadataRequest) (*dto.FileResponse, error) {
	f, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.OriginalName != "" {
		f.OriginalName = in.OriginalName
	}
	f.Category = defaultString(in.Category, DefaultFileCategory)
	f.Description = in.Description
	f.RelatedType = in.RelatedType
	f.RelatedID = in.RelatedID
	if err := uc.files.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFileResponse(f), nil
}

// Delete borra los metadatos y después el archivo en disco.
func (uc *FileUseCase) Delete(ctx context.Context, id int64) error {
	f, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := uc.files.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := uc.store.Remove(f.Filename); err != nil {
		uc.log.Warn().Err(err).Int64("file_id", id).Str("filename", f.Filename).Msg("borrar archivo en disco")
	}
	return nil
}

func (uc *FileUseCase) get(ctx context.Context, id int64) (*entity.StoredFile, error) {
	f, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func toFileResponse(f *entity.StoredFile) *dto.FileResponse {
	return &dto.FileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		Path:         f.Path,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Category:     f.Category,
		Description:  f.Description,
		RelatedType:  f.RelatedType,
		RelatedID:    f.RelatedID,
		UploadedAt:   f.UploadedAt,
	}
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
