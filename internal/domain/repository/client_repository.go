package repository

import (
	"context"
	"time"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type ClientRepository interface {
	// Create persiste un cliente nuevo. Devuelve domain.ErrDuplicate si alguna
	// de las constraints únicas por organización (email, wa_id, whatsapp_e164,
	// phone_e164) colisiona.
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// FindByWhatsAppIdentity busca dentro de la organización un cliente cuyo
	// wa_id, whatsapp_e164 o phone_e164 coincida (OR lógico entre los tres
	// campos): un cliente cargado a mano con el mismo número debe reusarse,
	// aunque nunca se le haya seteado wa_id.
	FindByWhatsAppIdentity(ctx context.Context, organizationID, waID, e164 string) (*entity.Client, error)
	GetByOrganizationAndEmail(ctx context.Context, organizationID, email string) (*entity.Client, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Client, error)
	ListByHandler(ctx context.Context, organizationID, handledBy string) ([]*entity.Client, error)
	CountByHandlerSince(ctx context.Context, organizationID, handledBy string, since time.Time) (int, error)
	// LastCustomerID devuelve el customer_id del cliente creado más
	// recientemente (vacío si no hay ninguno). Alimenta la secuencia MMDDYY+NNNN.
	LastCustomerID(ctx context.Context) (string, error)
}

// ClientPaymentRepository define el puerto de persistencia para pagos de clientes.
type ClientPaymentRepository interface {
	Create(ctx context.Context, payment *entity.ClientPayment) error
	ListByClient(ctx context.Context, clientID string) ([]*entity.ClientPayment, error)
}
