package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario con acceso a la aplicación.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	DisplayName  string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es un rol conocido.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
