package usecase

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// SavedUpload archivo ya escrito por el FileStore.
type SavedUpload struct {
	Filename string // nombre en disco
	Path     string // ruta pública
	MimeType string
	Size     int64
}

// FileStore almacenamiento del contenido de los archivos subidos.
type FileStore interface {
	Save(ctx context.Context, originalName string, size int64, r io.Reader) (*SavedUpload, error)
	Remove(name string) error
}

// ReportHeader datos comunes del encabezado de un reporte exportado.
type ReportHeader struct {
	BusinessName string
	Title        string
	GeneratedAt  time.Time
}

// ReportRenderer genera un formato de exportación (pdf, xlsx).
type ReportRenderer interface {
	Format() string
	ContentType() string
	RenderUsage(ctx context.Context, h ReportHeader, r *dto.InventoryUsageReport) ([]byte, error)
	RenderWaste(ctx context.Context, h ReportHeader, r *dto.WasteReport) ([]byte, error)
}

// CacheInvalidator caché que debe descartarse cuando la base cambia por fuera
// de su caso de uso (p. ej. al restaurar una copia).
type CacheInvalidator interface {
	InvalidateAll()
}

// BackupStore copia y restauración de la base completa.
type BackupStore interface {
	Snapshot(ctx context.Context, dest string) error
	RestoreFrom(ctx context.Context, src string, log *logger.Logger) (map[string]int64, error)
}
