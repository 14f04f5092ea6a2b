package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	accountrepo "portfolio/backend/internal/account/repository"
	accountservice "portfolio/backend/internal/account/service"
	"portfolio/backend/internal/chat/assistant"
	"portfolio/backend/internal/config"
	"portfolio/backend/internal/contact/mailer"
	contactrepo "portfolio/backend/internal/contact/repository"
	contactservice "portfolio/backend/internal/contact/service"
	"portfolio/backend/internal/db"
	"portfolio/backend/internal/httpserver"
	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/cache"
	postrepo "portfolio/backend/internal/post/repository"
	postservice "portfolio/backend/internal/post/service"
	projectrepo "portfolio/backend/internal/project/repository"
	projectservice "portfolio/backend/internal/project/service"
	"portfolio/backend/internal/security"
	"portfolio/backend/internal/server"
	"portfolio/backend/internal/telemetry/otel"
)

func main() {
	app := &cli.App{
		Name:  "server",
		Usage: "Run the portfolio HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bind",
				Usage: "Address to listen on (overrides HTTP_ADDR)",
			},
		},
		Action: serve,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	logger := logutil.New(os.Stderr, cfg.LogLevel, !cfg.IsProduction())
	log.Logger = logger
	ctx = logutil.WithLogger(ctx, logger)

	providers, err := otel.NewProviders(ctx, otel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokens, err := security.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL())
	if err != nil {
		return err
	}
	auth, err := accountservice.NewAuthService(
		accountrepo.NewPostgresRepository(pool),
		security.NewHasher(cfg.BcryptCost),
		tokens,
	)
	if err != nil {
		return err
	}

	reads, err := cache.New(ctx, cfg.ReadCacheTTL())
	if err != nil {
		return err
	}
	defer func() { _ = reads.Close() }()

	if cfg.ResendAPIKey == "" {
		logger.Warn().Msg("RESEND_API_KEY not set; contact form submissions will fail")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Info().Msg("OPENAI_API_KEY not set; chat runs in demo mode")
	}

	handler := server.NewRouter(server.Deps{
		Auth:     auth,
		Tokens:   tokens,
		Posts:    postservice.NewPostService(postrepo.NewPostgresRepository(pool), reads),
		Projects: projectservice.NewProjectService(projectrepo.NewPostgresRepository(pool), reads),
		Contact: contactservice.NewContactService(
			mailer.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.ContactFrom, cfg.ContactTo),
			contactrepo.NewPostgresRepository(pool),
		),
		Chat:         assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
		HealthPinger: pool,
	}, server.Options{
		APIPrefix:           cfg.APIPrefix,
		Production:          cfg.IsProduction(),
		SecureCookie:        cfg.IsProduction(),
		RegistrationEnabled: cfg.RegistrationEnabled,
		AllowedOrigins:      cfg.AllowedOrigins(),
		Logger:              logger,
	})

	addr := cfg.HTTPAddr
	if b := c.String("bind"); b != "" {
		addr = b
	}
	logger.Info().Str("api.prefix", cfg.APIPrefix).Bool("registration", cfg.RegistrationEnabled).Msg("routes mounted")
	return httpserver.Serve(ctx, addr, handler)
}
