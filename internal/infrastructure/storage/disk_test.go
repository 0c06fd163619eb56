package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/pkg/config"
)

// png mínimo: firma + cabecera IHDR.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newStore(t *testing.T, max int) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(config.StorageConfig{
		UploadDir:         filepath.Join(t.TempDir(), "uploads"),
		MaxUploadBytes:    max,
		AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".pdf", ".txt", ".csv"},
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestSave_PNG(t *testing.T) {
	s := newStore(t, 1<<20)

	saved, err := s.Save(context.Background(), "Menú Día.png", int64(len(pngBytes)), bytes.NewReader(pngBytes))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(saved.Filename, "1700000000000_"))
	assert.Equal(t, PublicPrefix+saved.Filename, saved.Path)
	assert.Equal(t, "image/png", saved.MimeType)
	assert.Equal(t, int64(len(pngBytes)), saved.Size)

	got, err := os.ReadFile(filepath.Join(s.Dir(), saved.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
}

func TestSave_TextoPlanoCSV(t *testing.T) {
	s := newStore(t, 1<<20)
	body := "name,qty\nflour,5\n"
	saved, err := s.Save(context.Background(), "stock.csv", -1, strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), saved.Size)
}

func TestSave_ExtensionNoPermitida(t *testing.T) {
	s := newStore(t, 1<<20)
	_, err := s.Save(context.Background(), "script.exe", 10, strings.NewReader("MZ"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestSave_ContenidoNoCoincide(t *testing.T) {
	s := newStore(t, 1<<20)
	_, err := s.Save(context.Background(), "foto.png", 5, strings.NewReader("hola mundo"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)

	entries, _ := os.ReadDir(s.Dir())
	assert.Empty(t, entries)
}

func TestSave_DemasiadoGrande(t *testing.T) {
	s := newStore(t, 16)

	_, err := s.Save(context.Background(), "a.png", 100, bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	// tamaño declarado falso: se corta al escribir
	_, err = s.Save(context.Background(), "a.png", 1, bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	entries, _ := os.ReadDir(s.Dir())
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	s := newStore(t, 1<<20)
	saved, err := s.Save(context.Background(), "a.png", -1, bytes.NewReader(pngBytes))
	require.NoError(t, err)

	require.NoError(t, s.Remove("../"+saved.Filename))
	_, err = os.Stat(filepath.Join(s.Dir(), saved.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove("no-existe.png"))
}
