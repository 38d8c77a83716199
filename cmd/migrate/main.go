// Command migrate applies the embedded schema migrations to DATABASE_URL and
// exits. The server runs the same step at startup.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"ledger-assistant/internal/config"
	"ledger-assistant/internal/db"
	"ledger-assistant/internal/logger"
	"ledger-assistant/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	closer, err := logger.Setup(cfg.GetLoggerConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("logger")
	}
	defer closer.Close()
	lg := logger.WithComponent("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect")
	}
	defer pool.Close()

	migrations, err := store.Migrations()
	if err != nil {
		lg.Fatal().Err(err).Msg("load migrations")
	}
	for _, m := range migrations {
		lg.Debug().Str("version", m.Version).Str("file", m.Filename).Str("checksum", m.Checksum[:12]).Msg("found")
	}
	if err := store.Migrate(ctx, pool, lg); err != nil {
		lg.Fatal().Err(err).Msg("migrate")
	}
	lg.Info().Int("count", len(migrations)).Msg("all migrations processed")
}
