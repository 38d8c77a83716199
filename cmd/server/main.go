// Command server is the ledger backend: user records, entries, settings,
// free-text parsing, invoice PDFs and bill ingestion over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	webAdapter "ledger-assistant/internal/adapters/web"
	"ledger-assistant/internal/ai"
	"ledger-assistant/internal/app"
	"ledger-assistant/internal/config"
	"ledger-assistant/internal/db"
	"ledger-assistant/internal/ingest"
	"ledger-assistant/internal/logger"
	"ledger-assistant/internal/pdf"
	"ledger-assistant/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	closer, err := logger.Setup(cfg.GetLoggerConfig())
	if err != nil {
		return err
	}
	defer closer.Close()
	lg := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := store.Migrate(ctx, pool, logger.WithComponent("migrate")); err != nil {
		return err
	}
	repo := store.New(pool, logger.WithComponent("store"))

	if cfg.OpenAIAPIKey == "" {
		lg.Warn().Msg("OPENAI_API_KEY is not set; only repayment phrases will parse")
	}
	parser := ai.NewParser(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger.WithComponent("parser"))

	renderer, err := pdf.NewRenderer(cfg.GotenbergURL, nil, logger.WithComponent("pdf"))
	if err != nil {
		return err
	}

	var extractor ingest.Extractor
	if cfg.DocumentAIEnabled() {
		dai, err := ingest.NewDocumentAI(ctx, ingest.Config{
			ProjectID:       cfg.DocumentAIProject,
			Location:        cfg.DocumentAILocation,
			ProcessorID:     cfg.DocumentAIProcessor,
			CredentialsJSON: cfg.GoogleCredentials,
			CredentialsFile: cfg.GoogleCredsFile,
		}, logger.WithComponent("documentai"))
		if err != nil {
			return err
		}
		defer dai.Close()
		extractor = dai
	} else {
		lg.Warn().Msg("Document AI is not configured; bill uploads will be rejected")
	}
	bills := ingest.NewService(extractor, logger.WithComponent("ingest"))

	svc := app.NewAppService(repo, parser, renderer, bills,
		map[string]app.Pinger{"pdf": renderer}, logger.WithComponent("app"))

	server := &http.Server{
		Addr: cfg.ServerAddr,
		Handler: webAdapter.NewHandler(svc, webAdapter.Options{
			AllowedOrigins:     cfg.AllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			Logger:             logger.WithComponent("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info().Str("addr", cfg.ServerAddr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
