package entity

import "time"

// Team agrupa usuarios de una organización bajo un manager.
type Team struct {
	ID             string
	OrganizationID string
	Name           string
	ManagerID      string
	MemberIDs      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
