package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/phone"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// DefaultRegion región por defecto cuando el caller no indica una.
const DefaultRegion = "AE"

// ResolveInput entrada de ResolveOrCreate. Value es el objeto changes[0].value
// del webhook de Meta; CountryCode es la región ISO-2 para normalizar.
type ResolveInput struct {
	OrganizationID string
	HandledBy      string
	Value          *Value
	CountryCode    string
}

// Resolution resultado de la resolución: el cliente (existente o recién
// creado) y si fue creado en esta invocación.
type Resolution struct {
	Client *entity.Client `json:"client"`
	IsNew  bool           `json:"isNew"`
}

// Resolver resuelve la identidad de un remitente de WhatsApp contra los
// clientes de una organización: reusa el registro existente o provisiona un
// lead mínimo. La operación es idempotente por número: reintentos del
// proveedor con el mismo payload caen en la rama de lookup.
type Resolver struct {
	clients repository.ClientRepository
}

// NewResolver construye el resolver con el puerto de persistencia.
func NewResolver(clients repository.ClientRepository) *Resolver {
	return &Resolver{clients: clients}
}

// ResolveOrCreate busca o crea el cliente para el remitente del primer mensaje
// del payload, dentro de la organización indicada.
//
// La exclusión mutua frente a entregas casi simultáneas del mismo remitente la
// dan las constraints únicas por organización del store: si el insert pierde
// la carrera (ErrDuplicate), se reintenta el lookup y se devuelve el registro
// ganador con IsNew=false. No se muta estado parcial en ningún fallo.
func (r *Resolver) ResolveOrCreate(ctx context.Context, in ResolveInput) (*Resolution, error) {
	if in.OrganizationID == "" {
		return nil, fmt.Errorf("%w: orgId es requerido", domain.ErrInvalidInput)
	}
	if in.Value == nil || len(in.Value.Messages) == 0 {
		return nil, fmt.Errorf("%w: el payload no trae mensajes", domain.ErrInvalidInput)
	}
	msg := in.Value.Messages[0]
	if msg.From == "" {
		return nil, fmt.Errorf("%w: falta el remitente (from)", domain.ErrInvalidInput)
	}

	region := in.CountryCode
	if region == "" {
		region = DefaultRegion
	}

	// Los payloads entrantes traen el "+" de forma inconsistente: se intenta
	// el valor tal cual y, si no lo trae, con el prefijo agregado.
	raw := msg.From
	if !strings.HasPrefix(raw, "+") {
		raw = "+" + raw
	}
	e164, ok := phone.NormalizeToE164(raw, region)
	if !ok {
		// Número no marcable: corte duro, no se busca ni se crea nada.
		return nil, fmt.Errorf("%w: número de WhatsApp inválido", domain.ErrInvalidInput)
	}
	waID := strings.TrimPrefix(e164, "+")

	var profileName string
	if len(in.Value.Contacts) > 0 {
		profileName = in.Value.Contacts[0].Profile.Name
	}
	firstName, lastName := splitProfileName(profileName)

	// Lookup por cualquiera de los tres campos de identidad, dentro del tenant.
	existing, err := r.clients.FindByWhatsAppIdentity(ctx, in.OrganizationID, waID, e164)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// TODO: enriquecer el registro existente con profileName cuando llegue
		// un nombre y el cliente tenga el placeholder.
		return &Resolution{Client: existing, IsNew: false}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword(waID)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := entity.NewWhatsAppClient(
		uuid.New().String(),
		in.OrganizationID,
		e164,
		firstName,
		lastName,
		placeholderEmail(waID, in.OrganizationID),
		region,
		string(hash),
		in.HandledBy,
	)

	if err := r.clients.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Otra entrega ganó la carrera de creación: el registro ya existe,
			// recuperarlo y devolverlo en lugar de propagar el conflicto.
			winner, lookupErr := r.clients.FindByWhatsAppIdentity(ctx, in.OrganizationID, waID, e164)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if winner == nil {
				return nil, fmt.Errorf("%w: insert duplicado sin registro visible para %s", domain.ErrConflict, waID)
			}
			return &Resolution{Client: winner, IsNew: false}, nil
		}
		return nil, err
	}

	return &Resolution{Client: client, IsNew: true}, nil
}
