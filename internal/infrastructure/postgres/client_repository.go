package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `
	id, organization_id, customer_id, first_name, last_name, email,
	phone, phone_e164, whatsapp_number, whatsapp_e164, wa_id,
	country, company_name, company_logo, profile_picture, password_hash,
	source, status, tags, handled_by, created_by, assigned_to,
	last_message_at, last_activity_at, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente. Las constraints únicas por organización
// (email, wa_id, whatsapp_e164, phone_e164) reportan domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (
			id, organization_id, customer_id, first_name, last_name, email,
			phone, phone_e164, whatsapp_number, whatsapp_e164, wa_id,
			country, company_name, company_logo, profile_picture, password_hash,
			source, status, tags, handled_by, created_by, assigned_to,
			last_message_at, last_activity_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.CustomerID, c.FirstName, c.LastName, c.Email,
		c.Phone, c.PhoneE164, c.WhatsAppNumber, c.WhatsAppE164, c.WaID,
		c.Country, c.CompanyName, c.CompanyLogo, c.ProfilePicture, c.PasswordHash,
		c.Source, c.Status, c.Tags, c.HandledBy, c.CreatedBy, c.AssignedTo,
		c.LastMessageAt, c.LastActivityAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// FindByWhatsAppIdentity busca dentro de la organización por cualquiera de los
// tres campos de identidad (OR lógico, no AND).
func (r *ClientRepo) FindByWhatsAppIdentity(ctx context.Context, organizationID, waID, e164 string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND (wa_id = $2 OR whatsapp_e164 = $3 OR phone_e164 = $3)
		LIMIT 1`
	return r.scanOne(ctx, query, organizationID, waID, e164)
}

// GetByOrganizationAndEmail obtiene un cliente por organización y email.
func (r *ClientRepo) GetByOrganizationAndEmail(ctx context.Context, organizationID, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE organization_id = $1 AND email = $2`
	return r.scanOne(ctx, query, organizationID, email)
}

// ListByOrganization lista los clientes del tenant, más recientes primero.
func (r *ClientRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients WHERE organization_id = $1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, organizationID)
}

// ListByHandler lista los clientes manejados por un usuario del tenant.
func (r *ClientRepo) ListByHandler(ctx context.Context, organizationID, handledBy string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients WHERE organization_id = $1 AND handled_by = $2 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, organizationID, handledBy)
}

// CountByHandlerSince cuenta altas del handler desde una fecha.
func (r *ClientRepo) CountByHandlerSince(ctx context.Context, organizationID, handledBy string, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE organization_id = $1 AND handled_by = $2 AND created_at >= $3`,
		organizationID, handledBy, since,
	).Scan(&n)
	if err != nil {
		return 0, wrapStoreErr("count clients", err)
	}
	return n, nil
}

// LastCustomerID devuelve el customer_id del alta manual más reciente (vacío si no hay).
func (r *ClientRepo) LastCustomerID(ctx context.Context) (string, error) {
	var id string
	err := r.q.QueryRow(ctx,
		`SELECT customer_id FROM clients WHERE customer_id <> '' ORDER BY created_at DESC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", wrapStoreErr("last customer id", err)
	}
	return id, nil
}

func (r *ClientRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.OrganizationID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Email,
		&c.Phone, &c.PhoneE164, &c.WhatsAppNumber, &c.WhatsAppE164, &c.WaID,
		&c.Country, &c.CompanyName, &c.CompanyLogo, &c.ProfilePicture, &c.PasswordHash,
		&c.Source, &c.Status, &c.Tags, &c.HandledBy, &c.CreatedBy, &c.AssignedTo,
		&c.LastMessageAt, &c.LastActivityAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get client", err)
	}
	return &c, nil
}

func (r *ClientRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list clients", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Email,
			&c.Phone, &c.PhoneE164, &c.WhatsAppNumber, &c.WhatsAppE164, &c.WaID,
			&c.Country, &c.CompanyName, &c.CompanyLogo, &c.ProfilePicture, &c.PasswordHash,
			&c.Source, &c.Status, &c.Tags, &c.HandledBy, &c.CreatedBy, &c.AssignedTo,
			&c.LastMessageAt, &c.LastActivityAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, wrapStoreErr("scan client", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
