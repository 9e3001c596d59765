package dto

import "time"

// CreateTeamRequest alta de un equipo; el caller queda como manager.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// TeamResponse salida de un equipo.
type TeamResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization"`
	Name           string    `json:"name"`
	ManagerID      string    `json:"manager"`
	MemberIDs      []string  `json:"members"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AddTeamMemberRequest crea un usuario y lo agrega al equipo. Si Password
// viene vacío se genera una aleatoria y se envía por email de invitación.
type AddTeamMemberRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	UserPhone string `json:"userPhone"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password"`
	Role      string `json:"role" validate:"omitempty,oneof=admin manager user"`
}
