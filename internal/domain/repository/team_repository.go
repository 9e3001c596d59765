package repository

import (
	"context"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para Team.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	AddMember(ctx context.Context, teamID, userID string) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Team, error)
}
