package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

// BackupUseCase descarga y restauración de la base completa.
type BackupUseCase struct {
	store   BackupStore
	caches  []CacheInvalidator
	log     *logger.Logger
	tempDir string
	now     func() time.Time
}

// NewBackupUseCase construye el caso de uso. tempDir "" usa el directorio temporal
// del sistema. caches se invalidan tras cada restauración.
func NewBackupUseCase(store BackupStore, tempDir string, log *logger.Logger, caches ...CacheInvalidator) *BackupUseCase {
	return &BackupUseCase{
		store:   store,
		caches:  caches,
		log:     log,
		tempDir: tempDir,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot escribe una copia consistente en un archivo temporal y devuelve su
// ruta y el nombre de descarga. El llamador borra el archivo.
func (uc *BackupUseCase) Snapshot(ctx context.Context) (path, name string, err error) {
	dir, err := os.MkdirTemp(uc.tempDir, "foodtruck-backup-")
	if err != nil {
		return "", "", fmt.Errorf("crear directorio temporal: %w", err)
	}
	name = fmt.Sprintf("foodtruck-backup-%s.db", uc.now().Format("20060102-150405"))
	path = filepath.Join(dir, name)
	if err := uc.store.Snapshot(ctx, path); err != nil {
		_ = os.RemoveAll(dir)
		return "", "", err
	}
	uc.log.Info().Str("file", name).Msg("copia de seguridad generada")
	return path, name, nil
}

// Cleanup borra el archivo devuelto por Snapshot y su directorio.
func (uc *BackupUseCase) Cleanup(path string) {
	if err := os.RemoveAll(filepath.Dir(path)); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("borrar copia temporal")
	}
}

// Restore copia r a un archivo temporal y reemplaza con él todas las tablas.
// Devuelve las filas restauradas por tabla.
func (uc *BackupUseCase) Restore(ctx context.Context, r io.Reader) (map[string]int64, error) {
	if r == nil {
		return nil, domain.Invalid("file", "archivo requerido")
	}
	f, err := os.CreateTemp(uc.tempDir, "foodtruck-restore-*.db")
	if err != nil {
		return nil, fmt.Errorf("crear archivo temporal: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("guardar copia subida: %w", err)
	}
	counts, err := uc.store.RestoreFrom(ctx, tmp, uc.log)
	if err != nil {
		return nil, err
	}
	for _, c := range uc.caches {
		c.InvalidateAll()
	}
	return counts, nil
}
