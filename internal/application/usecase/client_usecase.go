package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim85f/codex-crm/internal/application/dto"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/phone"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// ClientUseCase aplica reglas de negocio para clientes del CRM.
type ClientUseCase struct {
	clients  repository.ClientRepository
	payments repository.ClientPaymentRepository
}

// NewClientUseCase construye el caso de uso con los puertos de persistencia.
func NewClientUseCase(clients repository.ClientRepository, payments repository.ClientPaymentRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients, payments: payments}
}

// Dashboard arma el payload de clientes para un usuario: todos los de la
// organización, los que maneja él y su porcentaje de altas en los últimos 30 días.
func (uc *ClientUseCase) Dashboard(ctx context.Context, organizationID, userID string) (*dto.ClientDashboardResponse, error) {
	companyClients, err := uc.clients.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	own, err := uc.clients.ListByHandler(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	recent, err := uc.clients.CountByHandlerSince(ctx, organizationID, userID, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}

	var percentage float64
	if len(own) > 0 {
		percentage = float64(recent) / float64(len(own)) * 100
	}

	return &dto.ClientDashboardResponse{
		CompanyClients:    mapClients(companyClients),
		Clients:           mapClients(own),
		ClientsPercentage: percentage,
	}, nil
}

// Create alta manual de un cliente. Normaliza phone y whatsAppNumber a E.164
// estricto (rechaza números no marcables), genera el customer id de negocio y
// una credencial placeholder hasheada (el esquema exige password).
func (uc *ClientUseCase) Create(ctx context.Context, organizationID, createdBy string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.WhatsAppNumber == "" || in.Country == "" {
		return nil, domain.ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.clients.GetByOrganizationAndEmail(ctx, organizationID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	phoneE164, ok := phone.NormalizeToE164(in.Phone, in.CountryCode)
	if !ok {
		return nil, fmt.Errorf("%w: teléfono inválido", domain.ErrInvalidInput)
	}
	waE164, ok := phone.NormalizeToE164(in.WhatsAppNumber, in.CountryCode)
	if !ok {
		return nil, fmt.Errorf("%w: número de WhatsApp inválido", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultClientPassword(in.FirstName, in.LastName)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	lastID, err := uc.clients.LastCustomerID(ctx)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = entity.SourceManual
	}

	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		CustomerID:     nextCustomerID(lastID, now),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          email,
		Phone:          in.Phone,
		PhoneE164:      phoneE164,
		WhatsAppNumber: in.WhatsAppNumber,
		WhatsAppE164:   waE164,
		WaID:           strings.TrimPrefix(waE164, "+"),
		Country:        in.Country,
		CompanyName:    in.CompanyName,
		CompanyLogo:    in.CompanyLogo,
		ProfilePicture: in.ProfilePicture,
		PasswordHash:   string(hash),
		Source:         source,
		Status:         entity.ClientStatusActive,
		Tags:           []string{}, // tags es NOT NULL; nil se codificaría como NULL
		HandledBy:      createdBy,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// AddPayment registra un pago sobre un cliente de la organización.
func (uc *ClientUseCase) AddPayment(ctx context.Context, organizationID, clientID string, in dto.AddPaymentRequest) (*dto.PaymentResponse, error) {
	if in.Method == "" || in.Date.IsZero() || in.Amount.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	payment := &entity.ClientPayment{
		ID:            uuid.New().String(),
		ClientID:      client.ID,
		Amount:        in.Amount,
		Date:          in.Date,
		Method:        in.Method,
		TransactionID: in.TransactionID,
		CreatedAt:     time.Now(),
	}
	if err := uc.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListPayments lista los pagos de un cliente de la organización.
func (uc *ClientUseCase) ListPayments(ctx context.Context, organizationID, clientID string) ([]*dto.PaymentResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// ListForExport devuelve las entidades de la organización para el export xlsx.
func (uc *ClientUseCase) ListForExport(ctx context.Context, organizationID string) ([]*entity.Client, error) {
	return uc.clients.ListByOrganization(ctx, organizationID)
}

// nextCustomerID genera el id de negocio MMDDYY+NNNN: fecha del día más una
// secuencia de 4 dígitos que continúa la del último cliente (arranca en 51).
func nextCustomerID(lastCustomerID string, now time.Time) string {
	next := 51
	if len(lastCustomerID) >= 4 {
		if n, err := strconv.Atoi(lastCustomerID[len(lastCustomerID)-4:]); err == nil {
			next = n + 1
		}
	}
	return now.Format("010206") + fmt.Sprintf("%04d", next)
}

// defaultClientPassword credencial placeholder para altas manuales.
func defaultClientPassword(firstName, lastName string) string {
	clean := func(s string) string {
		return strings.Join(strings.Fields(strings.TrimSpace(s)), "")
	}
	return clean(firstName) + "." + clean(lastName) + "@1234"
}

// ToClientResponse mapea la entidad a su DTO de salida conservando la forma
// externa heredada (clientFor, waId, las cuatro vistas del número).
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:             c.ID,
		CustomerID:     c.CustomerID,
		OrganizationID: c.OrganizationID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		DisplayName:    c.DisplayName(),
		Email:          c.Email,
		Phone:          c.Phone,
		PhoneE164:      c.PhoneE164,
		WhatsAppNumber: c.WhatsAppNumber,
		WhatsAppE164:   c.WhatsAppE164,
		WaID:           c.WaID,
		Country:        c.Country,
		CompanyName:    c.CompanyName,
		CompanyLogo:    c.CompanyLogo,
		ProfilePicture: c.ProfilePicture,
		Source:         c.Source,
		Status:         c.Status,
		Tags:           c.Tags,
		HandledBy:      c.HandledBy,
		CreatedBy:      c.CreatedBy,
		AssignedTo:     c.AssignedTo,
		LastMessageAt:  c.LastMessageAt,
		LastActivityAt: c.LastActivityAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func mapClients(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClientResponse(c))
	}
	return out
}

func toPaymentResponse(p *entity.ClientPayment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		Amount:        p.Amount,
		Date:          p.Date,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}
