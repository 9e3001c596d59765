package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores del webhook de WhatsApp. El resultado distingue leads nuevos,
// remitentes ya conocidos y los distintos modos de falla.
var (
	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "whatsapp",
		Name:      "webhook_events_total",
		Help:      "Eventos de webhook recibidos, por resultado.",
	}, []string{"result"})

	webhookVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "whatsapp",
		Name:      "webhook_verify_total",
		Help:      "Handshakes de verificación del webhook, por resultado.",
	}, []string{"result"})
)

// Resultados reportados en webhookEventsTotal.
const (
	resultClientCreated  = "client_created"
	resultClientMatched  = "client_matched"
	resultInvalidPayload = "invalid_payload"
	resultUnknownTenant  = "unknown_tenant"
	resultStoreError     = "store_error"
	resultIgnored        = "ignored"
)

// MetricsHandler expone el registro de Prometheus sobre Fiber.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
