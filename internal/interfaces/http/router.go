package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hatim85f/codex-crm/internal/application/auth"
	"github.com/hatim85f/codex-crm/internal/application/usecase"
	"github.com/hatim85f/codex-crm/internal/application/whatsapp"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	OrganizationUC *usecase.OrganizationUseCase
	TeamUC         *usecase.TeamUseCase
	UserUC         *usecase.UserUseCase
	Resolver       *whatsapp.Resolver
	OrgRepo        repository.OrganizationRepository
	JWTSecret      string
	VerifyToken    string
	DefaultRegion  string
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de WhatsApp (público: Meta no manda Bearer token)
	webhookHandler := NewWebhookHandler(deps.OrgRepo, deps.Resolver, deps.VerifyToken, deps.DefaultRegion, deps.Log)
	webhooks := api.Group("/webhooks")
	webhooks.Get("/whatsapp", webhookHandler.Verify)
	webhooks.Post("/whatsapp", webhookHandler.Receive)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.Resolver, deps.DefaultRegion)
	clients.Get("/", clientHandler.Dashboard)
	clients.Post("/", clientHandler.Create)
	clients.Get("/export", clientHandler.Export)
	clients.Post("/test-inbound", clientHandler.TestInbound)
	clients.Post("/:id/payments", clientHandler.AddPayment)
	clients.Get("/:id/payments", clientHandler.ListPayments)

	// Organizations (protegido)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Get("/me", orgHandler.GetOwn)
	orgs.Put("/:id", orgHandler.Update)
	orgs.Put("/:id/whatsapp", RequireRole(entity.RoleAdmin), orgHandler.SaveWhatsAppSettings)

	// Teams (protegido)
	teams := protected.Group("/teams")
	teamHandler := NewTeamHandler(deps.TeamUC)
	teams.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), teamHandler.Create)
	teams.Get("/", teamHandler.List)
	teams.Post("/:id/members", RequireRole(entity.RoleAdmin, entity.RoleManager), teamHandler.AddMember)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
}
