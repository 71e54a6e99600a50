package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features <crate> [version]",
	Short: "List a crate's cargo feature flags",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	version := ""
	if len(args) > 1 {
		version = args[1]
	}

	flags, err := scraper.ListFeatureFlags(context.Background(), args[0], version)
	if err != nil {
		slog.Error("failed to list features", "error", err)
		os.Exit(1)
	}

	if len(flags) == 0 {
		fmt.Println("no feature flags found")
		return
	}

	for _, f := range flags {
		marker := " "
		if f.Enabled {
			marker = "*"
		}
		fmt.Printf("  %s %-20s %s\n", marker, f.Name, f.Description)
	}
}
