package repository

import (
	"context"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Organization, error)
	// GetBySlugOrName chequeo de conflicto previo al alta.
	GetBySlugOrName(ctx context.Context, slug, name string) (*entity.Organization, error)
	// GetByPhoneNumberID resuelve el tenant dueño de un webhook entrante.
	// Solo matchea integraciones habilitadas.
	GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	SetOwner(ctx context.Context, orgID, userID string) error
	UpdateWhatsApp(ctx context.Context, orgID string, wa entity.WhatsAppIntegration) error
}
