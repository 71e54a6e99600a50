package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type <crate> <path>",
	Short: "Inspect one documented symbol on docs.rs",
	Example: `  rust-docs-mcp-server type tokio runtime/struct.Runtime.html
  rust-docs-mcp-server type serde ser/trait.Serialize.html --version 1.0.210`,
	Args: cobra.ExactArgs(2),
	Run:  runType,
}

var typeVersion string

func init() {
	typeCmd.Flags().StringVar(&typeVersion, "version", "", "crate version (default: latest)")
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	info, err := scraper.GetTypeInfo(context.Background(), args[0], typeVersion, args[1])
	if err != nil {
		slog.Error("failed to get type info", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s %s\n", info.Kind, info.Name)
	if info.Description != "" {
		fmt.Printf("  %s\n", info.Description)
	}
	fmt.Printf("  docs: %s\n", info.DocURL)
	if info.SourceURL != "" {
		fmt.Printf("  source: %s\n", info.SourceURL)
	}
}
