package whatsapp_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatim85f/codex-crm/internal/application/whatsapp"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

// fakeClientRepo repo en memoria que reproduce el contrato del store real:
// (nil, nil) cuando no hay match, ErrDuplicate al violar la unicidad por
// organización de wa_id / whatsapp_e164 / phone_e164 / email, y rechazo de
// tags nil (la columna es NOT NULL y un []string nil llega como SQL NULL).
// El mutex hace de árbitro de la carrera igual que las constraints únicas
// de PostgreSQL.
type fakeClientRepo struct {
	mu      sync.Mutex
	clients []*entity.Client

	failCreates int // primeros N Create fallan con ErrStoreUnavailable
}

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreates > 0 {
		f.failCreates--
		return domain.ErrStoreUnavailable
	}
	if c.Tags == nil {
		return errors.New(`insert client: null value in column "tags" violates not-null constraint`)
	}
	for _, existing := range f.clients {
		if existing.OrganizationID != c.OrganizationID {
			continue
		}
		if (c.WaID != "" && existing.WaID == c.WaID) ||
			(c.WhatsAppE164 != "" && existing.WhatsAppE164 == c.WhatsAppE164) ||
			(c.PhoneE164 != "" && existing.PhoneE164 == c.PhoneE164) ||
			existing.Email == c.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	f.clients = append(f.clients, &cp)
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) FindByWhatsAppIdentity(_ context.Context, organizationID, waID, e164 string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.OrganizationID != organizationID {
			continue
		}
		if c.WaID == waID || c.WhatsAppE164 == e164 || c.PhoneE164 == e164 {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) GetByOrganizationAndEmail(_ context.Context, organizationID, email string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) ListByHandler(_ context.Context, organizationID, handledBy string) ([]*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.HandledBy == handledBy {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) CountByHandlerSince(_ context.Context, organizationID, handledBy string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.HandledBy == handledBy && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeClientRepo) LastCustomerID(_ context.Context) (string, error) {
	return "", nil
}

func (f *fakeClientRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func inboundValue(from, profileName string) *whatsapp.Value {
	v := &whatsapp.Value{
		MessagingProduct: "whatsapp",
		Metadata:         whatsapp.Metadata{PhoneNumberID: "pnid-1"},
		Messages:         []whatsapp.Message{{ID: "wamid.1", From: from, Type: "text"}},
	}
	if profileName != "" {
		v.Contacts = []whatsapp.Contact{{WaID: from, Profile: whatsapp.Profile{Name: profileName}}}
	}
	return v
}

const orgA = "org-aaaa"

func TestResolveOrCreate_CreaLeadNuevo(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)

	res, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA,
		HandledBy:      "user-1",
		Value:          inboundValue("971501234567", "Hatim Gomez"),
	})
	require.NoError(t, err)
	require.True(t, res.IsNew)

	c := res.Client
	assert.Equal(t, orgA, c.OrganizationID)
	assert.Equal(t, "971501234567", c.WaID)
	assert.Equal(t, "+971501234567", c.WhatsAppE164)
	assert.Equal(t, "+971501234567", c.PhoneE164)
	assert.Equal(t, "Hatim", c.FirstName)
	assert.Equal(t, "Gomez", c.LastName)
	assert.Equal(t, entity.SourceWhatsApp, c.Source)
	assert.Equal(t, entity.ClientStatusActive, c.Status)
	assert.Equal(t, "user-1", c.HandledBy)
	assert.NotEmpty(t, c.PasswordHash)
	assert.NotEqual(t, "971501234567@1234", c.PasswordHash, "la credencial se almacena hasheada")
	assert.Contains(t, c.Email, "@wa.local")
	assert.NotNil(t, c.Tags, "tags debe ir como slice vacío, nunca nil")
	assert.Empty(t, c.Tags)
}

func TestResolveOrCreate_EsIdempotente(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)
	ctx := context.Background()

	first, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: orgA, HandledBy: "user-1", Value: inboundValue("971501234567", "Hatim Gomez"),
	})
	require.NoError(t, err)
	require.True(t, first.IsNew)

	// Reintento del proveedor con el mismo payload.
	second, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: orgA, HandledBy: "user-1", Value: inboundValue("971501234567", "Hatim Gomez"),
	})
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	assert.Equal(t, first.Client.ID, second.Client.ID)
	assert.Equal(t, 1, repo.count())
}

func TestResolveOrCreate_FormatosEquivalentesMatchean(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)
	ctx := context.Background()

	first, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("971501234567", ""),
	})
	require.NoError(t, err)

	// Mismo número, esta vez con el "+" que Meta a veces incluye.
	second, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("+971501234567", ""),
	})
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	assert.Equal(t, first.Client.ID, second.Client.ID)
	assert.Equal(t, 1, repo.count())
}

func TestResolveOrCreate_MatcheaPorPhoneE164DeAltaManual(t *testing.T) {
	// Cliente dado de alta manualmente, sin wa_id; el webhook debe encontrarlo
	// por phone_e164 y no duplicarlo.
	repo := &fakeClientRepo{}
	manual := &entity.Client{
		ID:             "manual-1",
		OrganizationID: orgA,
		FirstName:      "Laura",
		LastName:       "Pérez",
		Email:          "laura@example.com",
		PhoneE164:      "+971501234567",
		Tags:           []string{},
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), manual))

	r := whatsapp.NewResolver(repo)
	res, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("971501234567", "Laura"),
	})
	require.NoError(t, err)
	assert.False(t, res.IsNew)
	assert.Equal(t, "manual-1", res.Client.ID)
	assert.Equal(t, 1, repo.count())
}

func TestResolveOrCreate_AislamientoPorTenant(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)
	ctx := context.Background()

	a, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: "org-aaaa", Value: inboundValue("971501234567", ""),
	})
	require.NoError(t, err)
	b, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: "org-bbbb", Value: inboundValue("971501234567", ""),
	})
	require.NoError(t, err)

	// El mismo número crea registros independientes en cada organización.
	assert.True(t, a.IsNew)
	assert.True(t, b.IsNew)
	assert.NotEqual(t, a.Client.ID, b.Client.ID)
	assert.Equal(t, 2, repo.count())
}

func TestResolveOrCreate_NombrePlaceholder(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)

	res, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("971501234567", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, "WhatsApp", res.Client.FirstName)
	assert.Equal(t, "Lead", res.Client.LastName)
}

func TestResolveOrCreate_NumeroInvalidoCorteDuro(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)

	_, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("abc", "Hatim"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, repo.count(), "un número inválido no debe crear nada")
}

func TestResolveOrCreate_PreCondiciones(t *testing.T) {
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)
	ctx := context.Background()

	_, err := r.ResolveOrCreate(ctx, whatsapp.ResolveInput{Value: inboundValue("971501234567", "")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin organización")

	_, err = r.ResolveOrCreate(ctx, whatsapp.ResolveInput{OrganizationID: orgA})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin payload")

	_, err = r.ResolveOrCreate(ctx, whatsapp.ResolveInput{OrganizationID: orgA, Value: &whatsapp.Value{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin mensajes")

	_, err = r.ResolveOrCreate(ctx, whatsapp.ResolveInput{
		OrganizationID: orgA,
		Value:          &whatsapp.Value{Messages: []whatsapp.Message{{ID: "wamid.1"}}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mensaje sin from")
}

func TestResolveOrCreate_FallaTransitoriaSePropaga(t *testing.T) {
	repo := &fakeClientRepo{failCreates: 1}
	r := whatsapp.NewResolver(repo)

	_, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("971501234567", ""),
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 0, repo.count())

	// El siguiente intento (reintento del proveedor) sí crea.
	res, err := r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
		OrganizationID: orgA, Value: inboundValue("971501234567", ""),
	})
	require.NoError(t, err)
	assert.True(t, res.IsNew)
}

func TestResolveOrCreate_CarreraDeCreacion(t *testing.T) {
	// Entregas casi simultáneas del mismo remitente: exactamente un registro,
	// exactamente un IsNew=true, el resto recibe el ganador.
	repo := &fakeClientRepo{}
	r := whatsapp.NewResolver(repo)

	const n = 16
	results := make([]*whatsapp.Resolution, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.ResolveOrCreate(context.Background(), whatsapp.ResolveInput{
				OrganizationID: orgA, Value: inboundValue("971501234567", "Hatim Gomez"),
			})
		}(i)
	}
	wg.Wait()

	created := 0
	var winnerID string
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "invocación %d", i)
		require.NotNil(t, results[i])
		if results[i].IsNew {
			created++
			winnerID = results[i].Client.ID
		}
	}
	assert.Equal(t, 1, created, "exactamente una invocación debe crear")
	assert.Equal(t, 1, repo.count())
	for i := 0; i < n; i++ {
		assert.Equal(t, winnerID, results[i].Client.ID, "todas las invocaciones devuelven el mismo registro")
	}
}
