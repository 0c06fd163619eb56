package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
)

func admin(id int64) *entity.User {
	return &entity.User{ID: id, Username: "admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive}
}

func TestUserCreate_HasheaYDefaults(t *testing.T) {
	repo := new(mockUserRepo)
	var saved *entity.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.User)
			saved.ID = 5
		}).Return(nil)
	uc := NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: " maria ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "maria", out.Username)
	assert.Equal(t, entity.RoleStaff, out.Role)
	assert.Equal(t, "maria", out.DisplayName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secreto123")))
}

func TestUserCreate_Validaciones(t *testing.T) {
	uc := NewUserUseCase(new(mockUserRepo))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "secreto123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_UltimoAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(admin(1), nil)
	repo.On("List", mock.Anything).Return([]*entity.User{admin(1), {ID: 2, Role: entity.RoleStaff, Status: entity.UserStatusActive}}, nil)
	uc := NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), 1, dto.UpdateUserRequest{Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUpdate_OtroAdminPermiteDegradar(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(admin(1), nil)
	repo.On("List", mock.Anything).Return([]*entity.User{admin(1), admin(3)}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := NewUserUseCase(repo)

	out, err := uc.Update(context.Background(), 1, dto.UpdateUserRequest{Status: entity.UserStatusInactive})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, out.Status)
}

func TestUserDelete(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(admin(1), nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2, Role: entity.RoleStaff}, nil)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)
	repo.On("List", mock.Anything).Return([]*entity.User{admin(1)}, nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(true, nil)
	uc := NewUserUseCase(repo)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, 1), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, 2))
	assert.ErrorIs(t, uc.Delete(ctx, 9), domain.ErrUserNotFound)
}
