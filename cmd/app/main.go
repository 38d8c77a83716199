// Command app is the terminal chat client. It talks to the ledger server
// over HTTP and keeps only the language preference locally.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ledger-assistant/internal/adapters/repl"
	"ledger-assistant/internal/chat"
	"ledger-assistant/internal/config"
	"ledger-assistant/internal/gateway"
	"ledger-assistant/internal/logger"
	"ledger-assistant/internal/prefs"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "app",
		Short: "Chat-based bookkeeping assistant",
		Long: `Record sales, expenses and credit in plain language, review summaries
and generate invoices from a terminal chat.

Required environment variables:
  API_BASE_URL - ledger server address (default http://127.0.0.1:5001)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChat,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start an interactive session (default)",
			Args:  cobra.NoArgs,
			RunE:  runChat,
		},
		&cobra.Command{
			Use:     "parse <message>",
			Short:   "Show how the server reads a free-text entry",
			Example: `  app parse "sold 3 soap 120 to Ramesh on credit"`,
			Args:    cobra.MinimumNArgs(1),
			RunE:    runParse,
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Check that the ledger server is reachable",
			Args:  cobra.NoArgs,
			RunE:  runPing,
		},
	)
	return root
}

// setup loads configuration and installs the global logger.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateClient(); err != nil {
		return nil, nil, err
	}
	closer, err := logger.Setup(cfg.GetLoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, closer, nil
}

func openPrefs(ctx context.Context, cfg *config.Config, log zerolog.Logger) (prefs.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Debug().Str("path", cfg.PrefsPath).Msg("using file preferences")
		return prefs.NewFileStore(cfg.PrefsPath), func() {}, nil
	}
	rs, err := prefs.Dial(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	log.Debug().Str("addr", cfg.RedisAddr).Msg("using redis preferences")
	return rs, func() { _ = rs.Close() }, nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logger.WithComponent("chat")

	ctx := cmd.Context()
	store, closeStore, err := openPrefs(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	gw := gateway.New(cfg.APIBaseURL, cfg.GatewayTimeout, logger.WithComponent("gateway"))
	if err := gw.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("api", cfg.APIBaseURL).Msg("ledger server not reachable; continuing")
	}

	engine := chat.NewEngine(gw, store, chat.Options{
		Location: cfg.Location(),
		PageSize: cfg.PageSize,
		Logger:   log,
	})
	session := chat.NewSession(engine, log)
	defer session.Close()

	return repl.Run(ctx, session, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), repl.Options{
		DownloadDir: cfg.DownloadDir,
		Logger:      log,
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	gw := gateway.New(cfg.APIBaseURL, cfg.GatewayTimeout, logger.WithComponent("gateway"))
	items, err := gw.ParseFreeText(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func runPing(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	gw := gateway.New(cfg.APIBaseURL, cfg.GatewayTimeout, logger.WithComponent("gateway"))
	if err := gw.Ping(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", cfg.APIBaseURL)
	return nil
}
