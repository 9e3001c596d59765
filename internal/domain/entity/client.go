package entity

import (
	"strings"
	"time"
)

// Fuentes válidas para Client (deben coincidir con el CHECK de la tabla clients).
const (
	SourceManual   = "manual"
	SourceWhatsApp = "whatsapp"
	SourceFacebook = "facebook"
	SourceGoogle   = "google"
)

// Estados válidos para Client.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client representa un lead/cliente de una organización (multi-tenant).
//
// Los campos Phone, PhoneE164, WhatsAppNumber, WhatsAppE164 y WaID son vistas
// denormalizadas de un mismo número: el esquema heredado los expone por separado
// y hay lectores externos que dependen de los cuatro nombres, así que se
// conservan como columnas. Para altas originadas en WhatsApp los cinco se
// derivan del mismo E.164 canónico vía NewWhatsAppClient, lo que los mantiene
// consistentes por construcción.
type Client struct {
	ID             string
	OrganizationID string // tenant (clientFor en el esquema heredado)
	CustomerID     string // id de negocio MMDDYY+secuencia, solo altas manuales
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	PhoneE164      string
	WhatsAppNumber string
	WhatsAppE164   string
	WaID           string // dígitos del E.164 sin el "+" inicial
	Country        string
	CompanyName    string
	CompanyLogo    string
	ProfilePicture string
	PasswordHash   string // bcrypt; el esquema exige credencial incluso para leads que nunca inician sesión
	Source         string // ver constantes Source*
	Status         string // active, inactive
	Tags           []string
	HandledBy      string
	CreatedBy      string
	AssignedTo     string
	LastMessageAt  *time.Time
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName devuelve el nombre completo del cliente.
func (c *Client) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NewWhatsAppClient construye un cliente originado en WhatsApp a partir del
// E.164 canónico. Todas las vistas del número quedan derivadas del mismo valor.
func NewWhatsAppClient(id, organizationID, e164, firstName, lastName, email, country, passwordHash, handledBy string) *Client {
	now := time.Now()
	return &Client{
		ID:             id,
		OrganizationID: organizationID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          e164,
		PhoneE164:      e164,
		WhatsAppNumber: e164,
		WhatsAppE164:   e164,
		WaID:           strings.TrimPrefix(e164, "+"),
		Country:        country,
		PasswordHash:   passwordHash,
		Source:         SourceWhatsApp,
		Status:         ClientStatusActive,
		// Slice vacío, no nil: la columna tags es NOT NULL y pgx codifica
		// un []string nil como SQL NULL.
		Tags:      []string{},
		HandledBy: handledBy,
		CreatedBy: handledBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
