package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hatim85f/codex-crm/internal/application/whatsapp"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// WebhookHandler recibe los eventos de WhatsApp Cloud API (Meta).
//
// El POST siempre responde 200: Meta reintenta ante cualquier otro status y un
// payload defectuoso o una falla transitoria del store no deben convertir cada
// reintento en un evento duplicado. Las fallas se loguean y se cuentan.
type WebhookHandler struct {
	orgs          repository.OrganizationRepository
	resolver      *whatsapp.Resolver
	verifyToken   string
	defaultRegion string
	log           zerolog.Logger
}

// NewWebhookHandler construye el handler del webhook.
func NewWebhookHandler(orgs repository.OrganizationRepository, resolver *whatsapp.Resolver, verifyToken, defaultRegion string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{orgs: orgs, resolver: resolver, verifyToken: verifyToken, defaultRegion: defaultRegion, log: log}
}

// Verify GET /api/webhooks/whatsapp
// Handshake de suscripción de Meta: si mode y token coinciden se devuelve el
// challenge en texto plano, si no 403.
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.verifyToken {
		webhookVerifyTotal.WithLabelValues("ok").Inc()
		return c.Status(fiber.StatusOK).SendString(challenge)
	}
	webhookVerifyTotal.WithLabelValues("rejected").Inc()
	h.log.Warn().Str("mode", mode).Msg("verificación de webhook rechazada")
	return c.SendStatus(fiber.StatusForbidden)
}

// Receive POST /api/webhooks/whatsapp
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var ev whatsapp.WebhookEvent
	if err := c.BodyParser(&ev); err != nil {
		webhookEventsTotal.WithLabelValues(resultInvalidPayload).Inc()
		h.log.Warn().Err(err).Msg("payload de webhook no parseable")
		return c.SendStatus(fiber.StatusOK)
	}

	for _, entry := range ev.Entry {
		for _, change := range entry.Changes {
			h.processChange(c, change)
		}
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *WebhookHandler) processChange(c *fiber.Ctx, change whatsapp.Change) {
	value := change.Value
	if len(value.Messages) == 0 {
		// Eventos de status (sent/delivered/read) no generan clientes.
		webhookEventsTotal.WithLabelValues(resultIgnored).Inc()
		return
	}

	phoneNumberID := value.Metadata.PhoneNumberID
	org, err := h.orgs.GetByPhoneNumberID(c.Context(), phoneNumberID)
	if err != nil {
		webhookEventsTotal.WithLabelValues(resultStoreError).Inc()
		h.log.Error().Err(err).Str("phoneNumberId", phoneNumberID).Msg("no se pudo resolver el tenant del webhook")
		return
	}
	if org == nil {
		webhookEventsTotal.WithLabelValues(resultUnknownTenant).Inc()
		h.log.Warn().Str("phoneNumberId", phoneNumberID).Msg("webhook para phone_number_id sin organización habilitada")
		return
	}

	res, err := h.resolver.ResolveOrCreate(c.Context(), whatsapp.ResolveInput{
		OrganizationID: org.ID,
		HandledBy:      org.DefaultHandler(),
		Value:          &value,
		CountryCode:    h.defaultRegion,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			webhookEventsTotal.WithLabelValues(resultInvalidPayload).Inc()
			h.log.Warn().Err(err).Str("org", org.ID).Msg("payload de webhook inválido")
		case errors.Is(err, domain.ErrStoreUnavailable):
			webhookEventsTotal.WithLabelValues(resultStoreError).Inc()
			h.log.Error().Err(err).Str("org", org.ID).Msg("store no disponible procesando webhook")
		default:
			webhookEventsTotal.WithLabelValues(resultStoreError).Inc()
			h.log.Error().Err(err).Str("org", org.ID).Msg("error resolviendo remitente de webhook")
		}
		return
	}

	if res.IsNew {
		webhookEventsTotal.WithLabelValues(resultClientCreated).Inc()
		h.log.Info().Str("org", org.ID).Str("clientId", res.Client.ID).Str("waId", res.Client.WaID).Msg("lead de WhatsApp creado")
	} else {
		webhookEventsTotal.WithLabelValues(resultClientMatched).Inc()
		h.log.Debug().Str("org", org.ID).Str("clientId", res.Client.ID).Msg("remitente de WhatsApp ya registrado")
	}
}
