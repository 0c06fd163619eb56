// Package storage guarda los archivos subidos en disco.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/pkg/config"
	"github.com/jhoicas/foodtruck-api/pkg/filename"
)

// PublicPrefix ruta HTTP bajo la que se sirven los archivos.
const PublicPrefix = "/uploads/"

// sniffLen bytes leídos para detectar el tipo MIME.
const sniffLen = 3072

// extensiones equivalentes a la que informa mimetype.
var extAliases = map[string]string{
	".jpeg": ".jpg",
	".htm":  ".html",
}

// extensiones que se aceptan con contenido de texto plano.
var textExts = map[string]bool{".txt": true, ".csv": true, ".md": true, ".json": true}

var _ usecase.FileStore = (*DiskStore)(nil)

// DiskStore guarda archivos en un directorio con límite de tamaño y lista de
// extensiones permitidas; el contenido debe coincidir con la extensión.
type DiskStore struct {
	dir      string
	maxBytes int64
	allowed  map[string]bool
	now      func() time.Time
}

// NewDiskStore crea el directorio si no existe.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return &DiskStore{
		dir:      cfg.UploadDir,
		maxBytes: int64(cfg.MaxUploadBytes),
		allowed:  allowed,
		now:      time.Now,
	}, nil
}

// Dir directorio de almacenamiento.
func (s *DiskStore) Dir() string { return s.dir }

// MaxBytes tamaño máximo aceptado.
func (s *DiskStore) MaxBytes() int64 { return s.maxBytes }

// Save valida y escribe el contenido de r con el nombre "<millis>_<nombre saneado>".
// size es el tamaño declarado por el cliente (-1 si se desconoce).
func (s *DiskStore) Save(_ context.Context, originalName string, size int64, r io.Reader) (*usecase.SavedUpload, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !s.allowed[ext] {
		return nil, domain.ErrUnsupportedFile
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	if !matchesExtension(mt, ext) {
		return nil, domain.ErrUnsupportedFile
	}

	name := filename.Stamped(s.now(), originalName)
	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("crear archivo: %w", err)
	}

	src := io.MultiReader(bytes.NewReader(head), r)
	if s.maxBytes > 0 {
		src = io.LimitReader(src, s.maxBytes+1)
	}
	written, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = domain.ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(dst)
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}

	return &usecase.SavedUpload{
		Filename: name,
		Path:     PublicPrefix + name,
		MimeType: mt.String(),
		Size:     written,
	}, nil
}

// Remove borra el archivo; no existir no es error.
func (s *DiskStore) Remove(name string) error {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}

// matchesExtension comprueba que el contenido detectado (o un ancestro en la
// jerarquía de mimetype) corresponda a la extensión.
func matchesExtension(mt *mimetype.MIME, ext string) bool {
	if alias, ok := extAliases[ext]; ok {
		ext = alias
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Extension() == ext {
			return true
		}
		if textExts[ext] && m.Is("text/plain") {
			return true
		}
	}
	return false
}
