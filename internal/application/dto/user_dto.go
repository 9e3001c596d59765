package dto

import "time"

// RegisterOrganizationRequest alta de organización + usuario admin dueño.
type RegisterOrganizationRequest struct {
	OrganizationName string `json:"organizationName" validate:"required,min=1,max=200"`
	Slug             string `json:"slug" validate:"required"`
	Address          string `json:"address"`
	PhoneNumber      string `json:"phoneNumber"`
	Website          string `json:"website"`
	Logo             string `json:"logo"`
	Industry         string `json:"industry"`
	Facebook         string `json:"facebook"`
	Instagram        string `json:"instagram"`
	WhatsApp         string `json:"whatsapp"`
	FirstName        string `json:"firstName" validate:"required"`
	LastName         string `json:"lastName" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	ProfilePicture   string `json:"profilePicture"`
}

// RegisterOrganizationResponse organización + admin + token de sesión.
type RegisterOrganizationResponse struct {
	Token        string               `json:"token"`
	Organization OrganizationResponse `json:"organization"`
	User         UserResponse         `json:"user"`
}

// CreateUserRequest alta de un usuario dentro de la organización del caller.
type CreateUserRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Phone          string `json:"userPhone"`
	Role           string `json:"role" validate:"required,oneof=admin manager user"`
	ProfilePicture string `json:"profilePicture"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"userPhone,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Role           string    `json:"role"`
	IsAuthorized   bool      `json:"isAuthorized"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
