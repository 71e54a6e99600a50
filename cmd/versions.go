package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <crate>",
	Short: "List published versions of a crate",
	Args:  cobra.ExactArgs(1),
	Run:   runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) {
	scraper, err := newScraper()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	versions, err := scraper.ListCrateVersions(context.Background(), args[0])
	if err != nil {
		slog.Error("failed to list versions", "error", err)
		os.Exit(1)
	}

	if len(versions) == 0 {
		fmt.Println("no versions found")
		return
	}

	for _, v := range versions {
		yanked := ""
		if v.Yanked {
			yanked = "  [yanked]"
		}
		fmt.Printf("  %-15s %s%s\n", v.Version, v.ReleaseDate, yanked)
	}
}
