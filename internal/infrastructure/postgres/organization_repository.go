package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const organizationColumns = `
	id, name, slug, address, phone, website, logo, industry, plan,
	social_facebook, social_instagram, social_whatsapp,
	wa_waba_id, wa_phone_number_id, wa_display_phone_number,
	wa_access_token, wa_verify_token, wa_enabled, wa_updated_at,
	owner_id, assigned_default_user_id, created_at, updated_at`

// OrganizationRepo implementación de OrganizationRepository.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización. Slug duplicado -> domain.ErrDuplicate.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (
			id, name, slug, address, phone, website, logo, industry, plan,
			social_facebook, social_instagram, social_whatsapp,
			wa_waba_id, wa_phone_number_id, wa_display_phone_number,
			wa_access_token, wa_verify_token, wa_enabled, wa_updated_at,
			owner_id, assigned_default_user_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Slug, org.Address, org.Phone, org.Website, org.Logo, org.Industry, org.Plan,
		org.Social.Facebook, org.Social.Instagram, org.Social.WhatsApp,
		org.WhatsApp.WabaID, org.WhatsApp.PhoneNumberID, org.WhatsApp.DisplayPhoneNumber,
		org.WhatsApp.AccessToken, org.WhatsApp.VerifyToken, org.WhatsApp.Enabled, org.WhatsApp.UpdatedAt,
		// En el alta en dos pasos la organización se inserta antes de crear a su
		// dueño, así que OwnerID todavía está vacío y debe ir como NULL.
		uuidOrNull(org.OwnerID), org.AssignedDefaultUserID, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert organization", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByOwner obtiene la organización de un dueño.
func (r *OrganizationRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE owner_id = $1`
	return r.scanOne(ctx, query, ownerID)
}

// GetBySlugOrName chequeo de conflicto previo al alta.
func (r *OrganizationRepo) GetBySlugOrName(ctx context.Context, slug, name string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations WHERE slug = $1 OR LOWER(name) = LOWER($2) LIMIT 1`
	return r.scanOne(ctx, query, slug, name)
}

// GetByPhoneNumberID resuelve el tenant dueño de un webhook entrante.
// Solo matchea integraciones habilitadas.
func (r *OrganizationRepo) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations WHERE wa_phone_number_id = $1 AND wa_enabled = TRUE`
	return r.scanOne(ctx, query, phoneNumberID)
}

// Update guarda los campos editables de la organización.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations SET
			name = $2, address = $3, phone = $4, website = $5, logo = $6,
			industry = $7, plan = $8,
			social_facebook = $9, social_instagram = $10, social_whatsapp = $11,
			assigned_default_user_id = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Address, org.Phone, org.Website, org.Logo,
		org.Industry, org.Plan,
		org.Social.Facebook, org.Social.Instagram, org.Social.WhatsApp,
		org.AssignedDefaultUserID, org.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("update organization", err)
	}
	return nil
}

// SetOwner fija el dueño de la organización (alta en dos pasos: org, admin, owner).
func (r *OrganizationRepo) SetOwner(ctx context.Context, orgID, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE organizations SET owner_id = $2, updated_at = NOW() WHERE id = $1`,
		orgID, userID,
	)
	if err != nil {
		return wrapStoreErr("set organization owner", err)
	}
	return nil
}

// UpdateWhatsApp guarda la integración WhatsApp Cloud API de la organización.
// phone_number_id duplicado (otra org ya rutea ese número) -> domain.ErrDuplicate.
func (r *OrganizationRepo) UpdateWhatsApp(ctx context.Context, orgID string, wa entity.WhatsAppIntegration) error {
	query := `
		UPDATE organizations SET
			wa_waba_id = $2, wa_phone_number_id = $3, wa_display_phone_number = $4,
			wa_access_token = $5, wa_verify_token = $6, wa_enabled = $7,
			wa_updated_at = $8, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		orgID, wa.WabaID, wa.PhoneNumberID, wa.DisplayPhoneNumber,
		wa.AccessToken, wa.VerifyToken, wa.Enabled, wa.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("update organization whatsapp", err)
	}
	return nil
}

func (r *OrganizationRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Organization, error) {
	var o entity.Organization
	// owner_id es NULL entre el insert de la organización y SetOwner.
	var ownerID *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.Name, &o.Slug, &o.Address, &o.Phone, &o.Website, &o.Logo, &o.Industry, &o.Plan,
		&o.Social.Facebook, &o.Social.Instagram, &o.Social.WhatsApp,
		&o.WhatsApp.WabaID, &o.WhatsApp.PhoneNumberID, &o.WhatsApp.DisplayPhoneNumber,
		&o.WhatsApp.AccessToken, &o.WhatsApp.VerifyToken, &o.WhatsApp.Enabled, &o.WhatsApp.UpdatedAt,
		&ownerID, &o.AssignedDefaultUserID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get organization", err)
	}
	if ownerID != nil {
		o.OwnerID = *ownerID
	}
	return &o, nil
}
