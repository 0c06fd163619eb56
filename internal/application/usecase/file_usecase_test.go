package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

func TestUpload_GuardaYRegistra(t *testing.T) {
	files, store := new(mockFileRepo), new(mockFileStore)
	store.On("Save", mock.Anything, "permiso.pdf", int64(4), mock.Anything).
		Return(&SavedUpload{Filename: "1_permiso.pdf", Path: "/uploads/1_permiso.pdf", MimeType: "application/pdf", Size: 4}, nil)
	files.On("Create", mock.Anything, mock.MatchedBy(func(f *entity.StoredFile) bool {
		return f.Filename == "1_permiso.pdf" && f.Category == DefaultFileCategory && f.OriginalName == "permiso.pdf"
	})).Run(func(args mock.Arguments) { args.Get(1).(*entity.StoredFile).ID = 3 }).Return(nil)
	uc := NewFileUseCase(files, store, logger.Nop())

	out, err := uc.Upload(context.Background(), dto.UploadRequest{OriginalName: "permiso.pdf", Size: 4}, strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, "/uploads/1_permiso.pdf", out.Path)
	files.AssertExpectations(t)
}

func TestUpload_FallaRegistroBorraArchivo(t *testing.T) {
	files, store := new(mockFileRepo), new(mockFileStore)
	store.On("Save", mock.Anything, "a.png", int64(-1), mock.Anything).Return(&SavedUpload{Filename: "1_a.png"}, nil)
	store.On("Remove", "1_a.png").Return(nil).Once()
	files.On("Create", mock.Anything, mock.Anything).Return(errors.New("disco lleno"))
	uc := NewFileUseCase(files, store, logger.Nop())

	_, err := uc.Upload(context.Background(), dto.UploadRequest{OriginalName: "a.png", Size: -1}, strings.NewReader(""))
	require.Error(t, err)
	store.AssertExpectations(t)
}

func TestUpload_TipoNoPermitido(t *testing.T) {
	store := new(mockFileStore)
	store.On("Save", mock.Anything, "x.exe", int64(2), mock.Anything).Return(nil, domain.ErrUnsupportedFile)
	uc := NewFileUseCase(new(mockFileRepo), store, logger.Nop())

	_, err := uc.Upload(context.Background(), dto.UploadRequest{OriginalName: "x.exe", Size: 2}, strings.NewReader("MZ"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestCreateMetadata_Validaciones(t *testing.T) {
	uc := NewFileUseCase(new(mockFileRepo), new(mockFileStore), logger.Nop())
	_, err := uc.Create(context.Background(), dto.FileMetadataRequest{Path: "/uploads/a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.FileMetadataRequest{Filename: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteFile_BorraDisco(t *testing.T) {
	files, store := new(mockFileRepo), new(mockFileStore)
	files.On("GetByID", mock.Anything, int64(3)).Return(&entity.StoredFile{ID: 3, Filename: "1_a.png"}, nil)
	files.On("Delete", mock.Anything, int64(3)).Return(true, nil)
	files.On("GetByID", mock.Anything, int64(4)).Return(nil, nil)
	store.On("Remove", "1_a.png").Return(nil).Once()
	uc := NewFileUseCase(files, store, logger.Nop())

	require.NoError(t, uc.Delete(context.Background(), 3))
	assert.ErrorIs(t, uc.Delete(context.Background(), 4), domain.ErrNotFound)
	store.AssertExpectations(t)
}

func TestUpdateFile_SoloMetadatos(t *testing.T) {
	files := new(mockFileRepo)
	files.On("GetByID", mock.Anything, int64(3)).Return(&entity.StoredFile{ID: 3, Filename: "1_a.png", OriginalName: "a.png", Category: "Images"}, nil)
	files.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := NewFileUseCase(files, new(mockFileStore), logger.Nop())

	out, err := uc.Update(context.Background(), 3, dto.FileMetadataRequest{Filename: "otro", Category: "Permits", Description: "vigente"})
	require.NoError(t, err)
	assert.Equal(t, "1_a.png", out.Filename)
	assert.Equal(t, "a.png", out.OriginalName)
	assert.Equal(t, "Permits", out.Category)
	assert.Equal(t, "vigente", out.Description)
}
