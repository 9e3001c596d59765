package dto

import "time"

// SocialLinksDTO enlaces públicos de la organización.
type SocialLinksDTO struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
}

// WhatsAppIntegrationResponse estado de la integración sin tokens.
type WhatsAppIntegrationResponse struct {
	WabaID             string `json:"wabaId,omitempty"`
	PhoneNumberID      string `json:"phoneNumberId,omitempty"`
	DisplayPhoneNumber string `json:"displayPhoneNumber,omitempty"`
	Enabled            bool   `json:"enabled"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID                    string                      `json:"id"`
	OrganizationName      string                      `json:"organizationName"`
	Slug                  string                      `json:"slug"`
	Address               string                      `json:"address,omitempty"`
	PhoneNumber           string                      `json:"phoneNumber,omitempty"`
	Website               string                      `json:"website,omitempty"`
	Logo                  string                      `json:"logo,omitempty"`
	Industry              string                      `json:"industry,omitempty"`
	Plan                  string                      `json:"plan"`
	Social                SocialLinksDTO              `json:"social"`
	WhatsApp              WhatsAppIntegrationResponse `json:"whatsapp"`
	OwnerID               string                      `json:"ownerId,omitempty"`
	AssignedDefaultUserID string                      `json:"assignedDefaultUserId,omitempty"`
	CreatedAt             time.Time                   `json:"createdAt"`
	UpdatedAt             time.Time                   `json:"updatedAt"`
}

// UpdateOrganizationRequest actualización parcial: campos vacíos no se tocan.
type UpdateOrganizationRequest struct {
	OrganizationName      string `json:"organizationName"`
	Address               string `json:"address"`
	PhoneNumber           string `json:"phoneNumber"`
	Website               string `json:"website"`
	Logo                  string `json:"logo"`
	Industry              string `json:"industry"`
	Plan                  string `json:"plan" validate:"omitempty,oneof=starter growth pro"`
	Facebook              string `json:"facebook"`
	Instagram             string `json:"instagram"`
	WhatsApp              string `json:"whatsapp"`
	AssignedDefaultUserID string `json:"assignedDefaultUserId"`
}

// WhatsAppSettingsRequest conexión del webhook de WhatsApp de la organización.
type WhatsAppSettingsRequest struct {
	WabaID             string `json:"wabaId" validate:"required"`
	PhoneNumberID      string `json:"phoneNumberId" validate:"required"`
	DisplayPhoneNumber string `json:"displayPhoneNumber"`
	AccessToken        string `json:"accessToken" validate:"required"`
	WebhookVerifyToken string `json:"webhookVerifyToken"`
}
