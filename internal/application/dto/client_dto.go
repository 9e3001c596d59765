package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hatim85f/codex-crm/internal/application/whatsapp"
)

// CreateClientRequest alta manual de un cliente.
// CountryCode es la región ISO-2 para normalizar phone y whatsAppNumber.
type CreateClientRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	WhatsAppNumber string `json:"whatsAppNumber" validate:"required"`
	Country        string `json:"country" validate:"required"`
	CountryCode    string `json:"countryCode" validate:"required,len=2"`
	CompanyName    string `json:"companyName"`
	CompanyLogo    string `json:"companyLogo"`
	ProfilePicture string `json:"profilePicture"`
	Source         string `json:"source" validate:"omitempty,oneof=manual whatsapp facebook google"`
}

// ClientResponse salida de un cliente. Los nombres JSON conservan la forma
// externa heredada (clientFor, waId y las cuatro vistas del número) porque hay
// lectores que dependen de ellos.
type ClientResponse struct {
	ID             string     `json:"id"`
	CustomerID     string     `json:"customerId,omitempty"`
	OrganizationID string     `json:"clientFor"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	DisplayName    string     `json:"displayName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	PhoneE164      string     `json:"phoneE164"`
	WhatsAppNumber string     `json:"whatsAppNumber"`
	WhatsAppE164   string     `json:"whatsAppE164"`
	WaID           string     `json:"waId"`
	Country        string     `json:"country"`
	CompanyName    string     `json:"companyName,omitempty"`
	CompanyLogo    string     `json:"companyLogo,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	Tags           []string   `json:"tags,omitempty"`
	HandledBy      string     `json:"handledBy,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	AssignedTo     string     `json:"assignedTo,omitempty"`
	LastMessageAt  *time.Time `json:"lastMessageAt,omitempty"`
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ClientDashboardResponse payload del dashboard de clientes del usuario:
// clientes de la organización, clientes propios y porcentaje de altas propias
// en los últimos 30 días.
type ClientDashboardResponse struct {
	CompanyClients    []*ClientResponse `json:"companyClients"`
	Clients           []*ClientResponse `json:"clients"`
	ClientsPercentage float64           `json:"clientsPercentage"`
}

// AddPaymentRequest registra un pago sobre un cliente.
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          time.Time       `json:"date" validate:"required"`
	Method        string          `json:"method" validate:"required"`
	TransactionID string          `json:"transactionId"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"clientId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TestInboundRequest invocación manual del resolver (ruta de prueba).
// Payload debe ser el objeto changes[0].value, igual que en el webhook real.
type TestInboundRequest struct {
	Payload     *whatsapp.Value `json:"payload" validate:"required"`
	CountryCode string          `json:"countryCode"`
}
