package usecase

import (
	"context"
	"time"

	"github.com/hatim85f/codex-crm/internal/application/auth"
	"github.com/hatim85f/codex-crm/internal/application/dto"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// OrganizationUseCase aplica reglas de negocio para organizaciones.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// GetByOwner devuelve la organización cuyo dueño es el usuario indicado.
func (uc *OrganizationUseCase) GetByOwner(ctx context.Context, ownerID string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToOrganizationResponse(org), nil
}

// Update actualización parcial de la organización: solo campos no vacíos.
// El caller debe pertenecer a la organización que actualiza.
func (uc *OrganizationUseCase) Update(ctx context.Context, orgID, callerOrgID string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if orgID != callerOrgID {
		return nil, domain.ErrForbidden
	}
	org, err := uc.repo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	if in.OrganizationName != "" {
		org.Name = in.OrganizationName
	}
	if in.Address != "" {
		org.Address = in.Address
	}
	if in.PhoneNumber != "" {
		org.Phone = in.PhoneNumber
	}
	if in.Website != "" {
		org.Website = in.Website
	}
	if in.Logo != "" {
		org.Logo = in.Logo
	}
	if in.Industry != "" {
		org.Industry = in.Industry
	}
	if in.Plan != "" {
		org.Plan = in.Plan
	}
	if in.Facebook != "" {
		org.Social.Facebook = in.Facebook
	}
	if in.Instagram != "" {
		org.Social.Instagram = in.Instagram
	}
	if in.WhatsApp != "" {
		org.Social.WhatsApp = in.WhatsApp
	}
	if in.AssignedDefaultUserID != "" {
		org.AssignedDefaultUserID = in.AssignedDefaultUserID
	}
	org.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return auth.ToOrganizationResponse(org), nil
}

// SaveWhatsAppSettings guarda la conexión de WhatsApp Cloud API de la
// organización y habilita el ruteo de webhooks por phoneNumberId.
func (uc *OrganizationUseCase) SaveWhatsAppSettings(ctx context.Context, orgID, callerOrgID string, in dto.WhatsAppSettingsRequest) (*dto.WhatsAppIntegrationResponse, error) {
	if orgID != callerOrgID {
		return nil, domain.ErrForbidden
	}
	if in.WabaID == "" || in.PhoneNumberID == "" || in.AccessToken == "" {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.repo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	wa := entity.WhatsAppIntegration{
		WabaID:             in.WabaID,
		PhoneNumberID:      in.PhoneNumberID,
		DisplayPhoneNumber: in.DisplayPhoneNumber,
		AccessToken:        in.AccessToken,
		VerifyToken:        in.WebhookVerifyToken,
		Enabled:            true,
		UpdatedAt:          &now,
	}
	if err := uc.repo.UpdateWhatsApp(ctx, orgID, wa); err != nil {
		return nil, err
	}
	return &dto.WhatsAppIntegrationResponse{
		WabaID:             wa.WabaID,
		PhoneNumberID:      wa.PhoneNumberID,
		DisplayPhoneNumber: wa.DisplayPhoneNumber,
		Enabled:            wa.Enabled,
	}, nil
}
