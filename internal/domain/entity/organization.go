package entity

import "time"

// Planes de comercialización disponibles.
const (
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanPro     = "pro"
)

// WhatsAppIntegration guarda la conexión de la organización con WhatsApp Cloud API.
// PhoneNumberID es la clave de ruteo multi-tenant: cada webhook entrante trae
// metadata.phone_number_id y con él se resuelve a qué organización pertenece.
type WhatsAppIntegration struct {
	WabaID             string // WhatsApp Business Account ID
	PhoneNumberID      string
	DisplayPhoneNumber string
	AccessToken        string // token de la Cloud API; nunca se serializa en respuestas
	VerifyToken        string
	Enabled            bool
	UpdatedAt          *time.Time
}

// SocialLinks enlaces públicos de la organización (no credenciales de API).
type SocialLinks struct {
	Facebook  string
	Instagram string
	WhatsApp  string // número público, no el phoneNumberId
}

// Organization representa un tenant del sistema. Toda búsqueda y unicidad de
// clientes se aplica dentro de una organización.
type Organization struct {
	ID                    string
	Name                  string
	Slug                  string // subdominio/ruteo, único global
	Address               string
	Phone                 string
	Website               string
	Logo                  string
	Industry              string
	Plan                  string // ver constantes Plan*
	Social                SocialLinks
	WhatsApp              WhatsAppIntegration
	OwnerID               string
	AssignedDefaultUserID string // usuario que recibe los leads entrantes por defecto
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DefaultHandler devuelve el usuario responsable de leads entrantes:
// el asignado por defecto si existe, si no el dueño.
func (o *Organization) DefaultHandler() string {
	if o.AssignedDefaultUserID != "" {
		return o.AssignedDefaultUserID
	}
	return o.OwnerID
}
