// seed creates the admin account through the same Register path the API uses.
// Idempotent: an existing account with the same email is left untouched.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	accountrepo "portfolio/backend/internal/account/repository"
	accountservice "portfolio/backend/internal/account/service"
	"portfolio/backend/internal/config"
	"portfolio/backend/internal/db"
	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/security"
)

func main() {
	var in accountservice.RegisterInput
	app := &cli.App{
		Name:  "seed",
		Usage: "Create the admin account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Admin email (login key)",
				EnvVars:     []string{"ADMIN_EMAIL"},
				Required:    true,
				Destination: &in.Email,
			},
			&cli.StringFlag{
				Name:        "password",
				Usage:       "Admin password (at least 6 characters)",
				EnvVars:     []string{"ADMIN_PASSWORD"},
				Required:    true,
				Destination: &in.Password,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Display name",
				Value:       "Admin",
				Destination: &in.Name,
			},
			&cli.StringFlag{
				Name:        "profile-image",
				Usage:       "Profile image URL",
				Destination: &in.ProfileImage,
			},
		},
		Action: func(c *cli.Context) error {
			return seed(c.Context, in)
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func seed(ctx context.Context, in accountservice.RegisterInput) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	logger := logutil.New(os.Stderr, cfg.LogLevel, true)

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokens, err := security.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL())
	if err != nil {
		return err
	}
	auth, err := accountservice.NewAuthService(accountrepo.NewPostgresRepository(pool), security.NewHasher(cfg.BcryptCost), tokens)
	if err != nil {
		return err
	}

	id, err := auth.Register(ctx, in)
	if errors.Is(err, accountservice.ErrAlreadyExists) {
		logger.Info().Msg("admin account already exists; skipping")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info().Str("account.id", id).Msg("admin account created")
	return nil
}
