package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/config"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/docsrs"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/mcp"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "rust-docs-mcp-server",
	Short: "Rust documentation lookup MCP server (crates.io + docs.rs)",
	Run:   runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose log output")
}

// newScraper loads configuration, configures logging, and wires the two
// origin adapters. Shared by the server and every subcommand.
func newScraper() (*docsrs.Scraper, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)
	return docsrs.FromConfig(cfg)
}

// setupLogging writes to stderr so the MCP stdio transport stays clean.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runServe(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	server := mcp.NewServer(scraper)

	errCh := make(chan error)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		slog.Info("received signal", "signal", sig.String())
		return nil
	case err := <-errCh:
		return err
	}
}
