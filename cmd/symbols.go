package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <crate> <query>",
	Short: "Search a crate's all-symbols index",
	Example: `  rust-docs-mcp-server symbols tokio runtime
  rust-docs-mcp-server symbols serde Deserialize --version 1.0.210`,
	Args: cobra.ExactArgs(2),
	Run:  runSymbols,
}

var symbolsVersion string

func init() {
	symbolsCmd.Flags().StringVar(&symbolsVersion, "version", "", "crate version (default: latest)")
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	symbols, err := scraper.SearchSymbols(context.Background(), args[0], symbolsVersion, args[1])
	if err != nil {
		slog.Error("symbol search failed", "error", err)
		os.Exit(1)
	}

	if len(symbols) == 0 {
		fmt.Println("no symbols found")
		return
	}

	for _, s := range symbols {
		fmt.Printf("  %-10s %s\n", s.Kind, s.Path)
		if s.DocURL != "" {
			fmt.Printf("    %s\n", s.DocURL)
		}
	}
}
