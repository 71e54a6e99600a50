package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:   "source <crate> <file>",
	Short: "Fetch a source file from the docs.rs source view",
	Example: `  rust-docs-mcp-server source tokio lib.rs
  rust-docs-mcp-server source serde de/mod.rs --version 1.0.210`,
	Args: cobra.ExactArgs(2),
	Run:  runSource,
}

var sourceVersion string

func init() {
	sourceCmd.Flags().StringVar(&sourceVersion, "version", "", "crate version (default: latest)")
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	code, err := scraper.GetSourceCode(context.Background(), args[0], sourceVersion, args[1])
	if err != nil {
		slog.Error("failed to get source code", "error", err)
		os.Exit(1)
	}
	fmt.Println(code)
}
