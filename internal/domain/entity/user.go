package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string
	OrganizationID string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	ProfilePicture string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Role           string // admin, manager, user
	IsAuthorized   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName devuelve el nombre completo del usuario.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
