package docsrs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
)

// ListFeatureFlags scrapes the docs.rs features page. Every feature heading
// becomes one record. The aggregate "default" section lists feature names
// rather than being a feature itself, so it is excluded from the output.
func (s *Scraper) ListFeatureFlags(ctx context.Context, name, version string) ([]FeatureFlag, error) {
	if name == "" {
		return nil, fmt.Errorf("crate name must not be empty")
	}
	version = orLatest(version)

	slog.Info("listing feature flags", "crate", name, "version", version)

	path := fmt.Sprintf("/crate/%s/%s/features", name, version)
	resp, err := s.docs.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching features for %s/%s: %w", name, version, err)
	}
	if err := expectHTML(resp); err != nil {
		return nil, fmt.Errorf("fetching features for %s/%s: %w", name, version, err)
	}

	doc, err := extract.Parse(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing features page for %s/%s: %w", name, version, err)
	}

	headings := doc.Find("#main h3")
	if headings.Length() == 0 {
		headings = doc.Find("h3")
	}

	var flags []FeatureFlag
	headings.Each(func(_ int, h *goquery.Selection) {
		flag, ok := parseFeatureHeading(h)
		if ok {
			flags = append(flags, flag)
		}
	})
	return flags, nil
}

func parseFeatureHeading(h *goquery.Selection) (FeatureFlag, bool) {
	text := strings.TrimSpace(h.Text())
	if text == "" {
		return FeatureFlag{}, false
	}

	enabled := strings.Contains(strings.ToLower(text), "(default)")
	name := strings.TrimSpace(strings.TrimSuffix(text, "(default)"))
	if name == "" || strings.EqualFold(name, "default") {
		return FeatureFlag{}, false
	}

	next := h.Next()
	if !enabled {
		enabled = h.Find(".default-feature").Length() > 0 ||
			next.HasClass("default-feature") ||
			next.Find(".default-feature").Length() > 0
	}

	var description string
	if goquery.NodeName(next) == "p" || goquery.NodeName(next) == "ul" {
		description = strings.TrimSpace(next.Text())
	}

	return FeatureFlag{Name: name, Description: description, Enabled: enabled}, true
}
