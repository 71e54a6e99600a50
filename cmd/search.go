package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/docsrs"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search crates.io for Rust crates",
	Example: `  rust-docs-mcp-server search serde
  rust-docs-mcp-server search "async http client"
  rust-docs-mcp-server search --per-page 5 tokio`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

var (
	searchPage    int
	searchPerPage int
)

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 10, "results per page")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	result, err := scraper.SearchCrates(context.Background(), docsrs.SearchOptions{
		Query:   args[0],
		Page:    searchPage,
		PerPage: searchPerPage,
	})
	if err != nil {
		slog.Error("search failed", "error", err)
		os.Exit(1)
	}

	if len(result.Crates) == 0 {
		fmt.Println("no results")
		return
	}

	fmt.Printf("%d of %d results\n", len(result.Crates), result.Total)
	for _, c := range result.Crates {
		fmt.Printf("  %-30s %s\n", c.Name, c.Version)
		if c.Description != "" {
			fmt.Printf("    %s\n", c.Description)
		}
	}
}
