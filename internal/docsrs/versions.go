package docsrs

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
)

// ListCrateVersions scrapes the docs.rs release listing for a crate. The
// primary strategy reads the explicit release elements; when that yields
// nothing, a fallback scans anchor hrefs matching the crate-version URL
// pattern, deduplicating by version and skipping the "latest" alias.
func (s *Scraper) ListCrateVersions(ctx context.Context, name string) ([]CrateVersion, error) {
	if name == "" {
		return nil, fmt.Errorf("crate name must not be empty")
	}

	slog.Info("listing crate versions", "crate", name)

	path := "/crate/" + name
	resp, err := s.docs.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching versions for %q: %w", name, err)
	}
	if err := expectHTML(resp); err != nil {
		return nil, fmt.Errorf("fetching versions for %q: %w", name, err)
	}

	doc, err := extract.Parse(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing version listing for %q: %w", name, err)
	}

	versions := parseReleaseList(doc)
	if len(versions) == 0 {
		slog.Debug("release list empty, scanning anchors", "crate", name)
		versions = scanVersionAnchors(doc, name)
	}
	return versions, nil
}

// parseReleaseList reads docs.rs release entries: version text, yanked
// marker, and release date where present.
func parseReleaseList(doc *goquery.Document) []CrateVersion {
	var versions []CrateVersion
	doc.Find(".release").Each(func(_ int, rel *goquery.Selection) {
		version := strings.TrimSpace(rel.Find(".version").First().Text())
		if version == "" || version == "latest" {
			return
		}
		versions = append(versions, CrateVersion{
			Version:     version,
			Yanked:      rel.HasClass("yanked") || rel.Find(".yanked").Length() > 0,
			ReleaseDate: strings.TrimSpace(rel.Find(".date").First().Text()),
		})
	})
	return versions
}

// scanVersionAnchors extracts versions from hrefs of the form
// /crate/{name}/{version}. Duplicates collapse to the first occurrence.
func scanVersionAnchors(doc *goquery.Document, name string) []CrateVersion {
	pattern := regexp.MustCompile(`^/crate/` + regexp.QuoteMeta(name) + `/([^/]+)`)

	seen := make(map[string]bool)
	var versions []CrateVersion
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := pattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		version := m[1]
		if version == "latest" || seen[version] {
			return
		}
		seen[version] = true
		versions = append(versions, CrateVersion{Version: version})
	})
	return versions
}
