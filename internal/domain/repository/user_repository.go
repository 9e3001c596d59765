package repository

import (
	"context"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.User, error)
}
