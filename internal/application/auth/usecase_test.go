package auth

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
	"github.com/jhoicas/foodtruck-api/pkg/jwt"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const secret = "test-secret"

func userWithPassword(t *testing.T, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: 7, Username: "maria", PasswordHash: string(hash), Role: entity.RoleStaff, Status: status}
}

func TestLogin_OK(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByUsername", mock.Anything, "maria").Return(userWithPassword(t, entity.UserStatusActive), nil)
	uc := NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "foodtruck-api"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)
	assert.Equal(t, "foodtruck-api", claims.Issuer)
}

func TestLogin_Rechazos(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByUsername", mock.Anything, "maria").Return(userWithPassword(t, entity.UserStatusActive), nil)
	repo.On("GetByUsername", mock.Anything, "pedro").Return(nil, nil)
	repo.On("GetByUsername", mock.Anything, "ana").Return(userWithPassword(t, entity.UserStatusInactive), nil)
	uc := NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 60})
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "pedro", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "maria"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnsureAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "admin" && u.Role == entity.RoleAdmin &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("cambiar123")) == nil
	})).Return(nil).Once()
	uc := NewAuthUseCase(repo, JWTConfig{Secret: secret})

	require.NoError(t, uc.EnsureAdmin(context.Background(), "admin", "cambiar123", logger.Nop()))
	repo.AssertExpectations(t)
}

func TestEnsureAdmin_ConUsuariosOSinPassword(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Count", mock.Anything).Return(2, nil).Once()
	repo.On("Count", mock.Anything).Return(0, nil).Once()
	uc := NewAuthUseCase(repo, JWTConfig{Secret: secret})

	require.NoError(t, uc.EnsureAdmin(context.Background(), "admin", "cambiar123", logger.Nop()))
	require.NoError(t, uc.EnsureAdmin(context.Background(), "admin", "", logger.Nop()))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
