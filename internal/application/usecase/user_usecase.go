package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/foodtruck-api/internal/application/auth"
	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios (solo administradores).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// Create crea un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.Invalid("username", "es obligatorio")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", "debe tener al menos 8 caracteres")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.Invalid("role", "debe ser admin o staff")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.DisplayName == "" {
		user.DisplayName = username
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// Update modifica datos, rol, estado y opcionalmente la contraseña.
// No permite dejar el sistema sin un administrador activo.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if u := strings.TrimSpace(in.Username); u != "" {
		user.Username = u
	}
	if in.DisplayName != "" {
		user.DisplayName = strings.TrimSpace(in.DisplayName)
	}
	wasActiveAdmin := user.Role == entity.RoleAdmin && user.Status == entity.UserStatusActive
	if in.Role != "" {
		if !entity.ValidRole(in.Role) {
			return nil, domain.Invalid("role", "debe ser admin o staff")
		}
		user.Role = in.Role
	}
	if in.Status != "" {
		if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusInactive {
			return nil, domain.Invalid("status", "debe ser active o inactive")
		}
		user.Status = in.Status
	}
	if in.Password != "" {
		if len(in.Password) < MinPasswordLength {
			return nil, domain.Invalid("password", "debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	stillActiveAdmin := user.Role == entity.RoleAdmin && user.Status == entity.UserStatusActive
	if wasActiveAdmin && !stillActiveAdmin {
		if err := uc.ensureOtherAdmin(ctx, id); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// Delete elimina un usuario; no se puede borrar al último administrador activo.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin && user.Status == entity.UserStatusActive {
		if err := uc.ensureOtherAdmin(ctx, id); err != nil {
			return err
		}
	}
	_, err = uc.repo.Delete(ctx, id)
	return err
}

func (uc *UserUseCase) ensureOtherAdmin(ctx context.Context, exceptID int64) error {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != exceptID && u.Role == entity.RoleAdmin && u.Status == entity.UserStatusActive {
			return nil
		}
	}
	return domain.ErrConflict
}
