package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim85f/codex-crm/internal/application/dto"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// fakeClients implementación mínima en memoria de repository.ClientRepository.
type fakeClients struct {
	clients        []*entity.Client
	lastCustomerID string
}

func (f *fakeClients) Create(_ context.Context, c *entity.Client) error {
	// La columna tags es NOT NULL: un slice nil se codificaría como SQL NULL.
	if c.Tags == nil {
		return errors.New(`insert client: null value in column "tags" violates not-null constraint`)
	}
	for _, e := range f.clients {
		if e.OrganizationID == c.OrganizationID && e.Email == c.Email {
			return domain.ErrDuplicate
		}
	}
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) FindByWhatsAppIdentity(_ context.Context, organizationID, waID, e164 string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && (c.WaID == waID || c.WhatsAppE164 == e164 || c.PhoneE164 == e164) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) GetByOrganizationAndEmail(_ context.Context, organizationID, email string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClients) ListByHandler(_ context.Context, organizationID, handledBy string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.HandledBy == handledBy {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClients) CountByHandlerSince(_ context.Context, organizationID, handledBy string, since time.Time) (int, error) {
	n := 0
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.HandledBy == handledBy && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeClients) LastCustomerID(context.Context) (string, error) {
	return f.lastCustomerID, nil
}

type fakePayments struct {
	payments []*entity.ClientPayment
}

func (f *fakePayments) Create(_ context.Context, p *entity.ClientPayment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePayments) ListByClient(_ context.Context, clientID string) ([]*entity.ClientPayment, error) {
	var out []*entity.ClientPayment
	for _, p := range f.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// nextCustomerID
// ──────────────────────────────────────────────────────────────────────────────

func TestNextCustomerID_PrimerCliente(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "0829260051", nextCustomerID("", now), "sin clientes previos arranca en 51")
}

func TestNextCustomerID_ContinuaSecuencia(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	// La secuencia continúa la del último cliente aunque la fecha cambie.
	assert.Equal(t, "0829260072", nextCustomerID("0815260071", now))
}

func TestNextCustomerID_UltimoIDCorrupto(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "0829260051", nextCustomerID("xyz", now), "id ilegible reinicia en 51")
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func validCreateRequest() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		FirstName:      "Laura",
		LastName:       "Pérez",
		Email:          "Laura@Example.com",
		Phone:          "0501234567",
		WhatsAppNumber: "+971501234567",
		Country:        "AE",
		CountryCode:    "AE",
	}
}

func TestClientCreate_NormalizaYDeriva(t *testing.T) {
	clients := &fakeClients{}
	uc := NewClientUseCase(clients, &fakePayments{})

	out, err := uc.Create(context.Background(), "org-1", "user-1", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "laura@example.com", out.Email, "el email se guarda en minúsculas")
	assert.Equal(t, "+971501234567", out.PhoneE164, "phone local normalizado con la región")
	assert.Equal(t, "+971501234567", out.WhatsAppE164)
	assert.Equal(t, "971501234567", out.WaID, "waId son los dígitos del E.164 sin +")
	assert.Equal(t, entity.SourceManual, out.Source)
	assert.Regexp(t, `^\d{6}00\d{2}$`, out.CustomerID)
	assert.Equal(t, "user-1", out.HandledBy)

	// La credencial placeholder queda hasheada y verifica contra first.last@1234.
	stored := clients.clients[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Laura.Pérez@1234")))
	assert.NotNil(t, stored.Tags, "tags se persiste como slice vacío, nunca nil")
}

func TestClientCreate_TelefonoInvalido(t *testing.T) {
	uc := NewClientUseCase(&fakeClients{}, &fakePayments{})
	in := validCreateRequest()
	in.Phone = "123"

	_, err := uc.Create(context.Background(), "org-1", "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientCreate_EmailDuplicadoEnTenant(t *testing.T) {
	clients := &fakeClients{clients: []*entity.Client{{
		ID: "c1", OrganizationID: "org-1", Email: "laura@example.com",
	}}}
	uc := NewClientUseCase(clients, &fakePayments{})

	_, err := uc.Create(context.Background(), "org-1", "user-1", validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientCreate_CamposRequeridos(t *testing.T) {
	uc := NewClientUseCase(&fakeClients{}, &fakePayments{})
	in := validCreateRequest()
	in.Email = ""

	_, err := uc.Create(context.Background(), "org-1", "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Porcentaje(t *testing.T) {
	now := time.Now()
	clients := &fakeClients{clients: []*entity.Client{
		{ID: "c1", OrganizationID: "org-1", HandledBy: "user-1", CreatedAt: now.AddDate(0, 0, -5)},
		{ID: "c2", OrganizationID: "org-1", HandledBy: "user-1", CreatedAt: now.AddDate(0, 0, -60)},
		{ID: "c3", OrganizationID: "org-1", HandledBy: "user-2", CreatedAt: now},
	}}
	uc := NewClientUseCase(clients, &fakePayments{})

	out, err := uc.Dashboard(context.Background(), "org-1", "user-1")
	require.NoError(t, err)

	assert.Len(t, out.CompanyClients, 3)
	assert.Len(t, out.Clients, 2)
	// 1 alta en los últimos 30 días sobre 2 clientes propios.
	assert.InDelta(t, 50.0, out.ClientsPercentage, 0.001)
}

func TestDashboard_SinClientesPropios(t *testing.T) {
	uc := NewClientUseCase(&fakeClients{}, &fakePayments{})

	out, err := uc.Dashboard(context.Background(), "org-1", "user-1")
	require.NoError(t, err)
	assert.Zero(t, out.ClientsPercentage, "sin clientes propios el porcentaje es 0, no NaN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestListPayments_ClienteDeOtroTenant(t *testing.T) {
	clients := &fakeClients{clients: []*entity.Client{{ID: "c1", OrganizationID: "org-2"}}}
	uc := NewClientUseCase(clients, &fakePayments{})

	_, err := uc.ListPayments(context.Background(), "org-1", "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un cliente de otro tenant se reporta como inexistente")
}
