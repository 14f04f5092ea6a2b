// migrate runs DB migrations from embedded SQL; use with go run ./cmd/migrate up|down.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"portfolio/backend/internal/config"
	"portfolio/backend/internal/db/migrate"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "Apply or roll back the database schema",
		Commands: []*cli.Command{
			directionCmd(migrate.Up, "Apply all pending migrations"),
			directionCmd(migrate.Down, "Roll back every migration"),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
}

func directionCmd(d migrate.Direction, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(d),
		Usage: usage,
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := migrate.Run(cfg.DatabaseURL, d); err != nil {
				return err
			}
			log.Info().Str("direction", string(d)).Msg("migrations applied")
			return nil
		},
	}
}
