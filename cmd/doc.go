package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc <crate> [version]",
	Short: "Print crate documentation from docs.rs as markdown",
	Example: `  rust-docs-mcp-server doc serde
  rust-docs-mcp-server doc tokio 1.40.0`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
}

func runDoc(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	version := ""
	if len(args) > 1 {
		version = args[1]
	}

	md, err := scraper.GetCrateDocumentation(context.Background(), args[0], version)
	if err != nil {
		slog.Error("failed to get documentation", "error", err)
		os.Exit(1)
	}
	fmt.Println(md)
}
