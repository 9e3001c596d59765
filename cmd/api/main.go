package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hatim85f/codex-crm/internal/application/auth"
	"github.com/hatim85f/codex-crm/internal/application/usecase"
	"github.com/hatim85f/codex-crm/internal/application/whatsapp"
	"github.com/hatim85f/codex-crm/internal/infrastructure/cache"
	"github.com/hatim85f/codex-crm/internal/infrastructure/mail"
	"github.com/hatim85f/codex-crm/internal/infrastructure/postgres"
	httpRouter "github.com/hatim85f/codex-crm/internal/interfaces/http"
	"github.com/hatim85f/codex-crm/pkg/config"
	"github.com/hatim85f/codex-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR el ruteo de webhooks consulta siempre la DB.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache deshabilitado")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	clientRepo := postgres.NewClientRepository(pool)
	paymentRepo := postgres.NewClientPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	orgRepo := cache.NewOrgCache(postgres.NewOrganizationRepository(pool), rdb, log.Zerolog())
	txRunner := postgres.NewTxRunner(pool)

	// Brevo es opcional: sin BREVO_API_KEY no se envían emails de invitación.
	var mailer usecase.InviteMailer
	if cfg.Mail.BrevoAPIKey != "" {
		mailer = mail.NewBrevoClient(cfg.Mail.BrevoAPIKey, cfg.Mail.BrevoBaseURL)
	}

	resolver := whatsapp.NewResolver(clientRepo)
	authUC := auth.NewAuthUseCase(userRepo, orgRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo, paymentRepo)
	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	teamUC := usecase.NewTeamUseCase(teamRepo, userRepo, mailer, cfg.Mail.InviteTemplateID, log.Zerolog())
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Codex CRM API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		OrganizationUC: orgUC,
		TeamUC:         teamUC,
		UserUC:         userUC,
		Resolver:       resolver,
		OrgRepo:        orgRepo,
		JWTSecret:      cfg.JWT.Secret,
		VerifyToken:    cfg.WhatsApp.VerifyToken,
		DefaultRegion:  cfg.WhatsApp.DefaultRegion,
		Log:            log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
