package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <crate>",
	Short: "Show crate metadata and versions from crates.io",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	details, err := scraper.GetCrateDetails(context.Background(), args[0])
	if err != nil {
		slog.Error("failed to get crate details", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s  (%d downloads)\n", details.Name, details.Downloads)
	if details.Description != "" {
		fmt.Printf("  %s\n", details.Description)
	}
	for _, link := range []struct{ label, url string }{
		{"homepage", details.Homepage},
		{"repository", details.Repository},
		{"docs", details.Documentation},
	} {
		if link.url != "" {
			fmt.Printf("  %s: %s\n", link.label, link.url)
		}
	}

	fmt.Printf("  %d versions", len(details.Versions))
	if len(details.Versions) > 0 {
		fmt.Printf(", newest %s", details.Versions[0].Version)
	}
	fmt.Println()
}
