package docsrs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
)

// docContentStrategies locate the main documentation block on a docs.rs crate
// page, from the current rustdoc container down to a bare content element.
var docContentStrategies = []extract.Strategy{
	{Name: "rustdoc", Selector: ".rustdoc"},
	{Name: "main-content", Selector: "#main-content"},
	{Name: "main", Selector: "main"},
	{Name: "content", Selector: ".content"},
}

// GetCrateDocumentation fetches the crate's documentation page and returns it
// as readable markdown. When no selector strategy matches, the whole page is
// converted instead of failing; missing markup is drift, not an error.
func (s *Scraper) GetCrateDocumentation(ctx context.Context, name, version string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("crate name must not be empty")
	}
	version = orLatest(version)

	slog.Info("fetching crate documentation", "crate", name, "version", version)

	path := fmt.Sprintf("/%s/%s/%s/", name, version, crateIdent(name))
	resp, err := s.docs.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("fetching documentation for %s/%s: %w", name, version, err)
	}
	if err := expectHTML(resp); err != nil {
		return "", fmt.Errorf("fetching documentation for %s/%s: %w", name, version, err)
	}

	doc, err := extract.Parse(string(resp.Body))
	if err != nil {
		return "", fmt.Errorf("parsing documentation page for %s/%s: %w", name, version, err)
	}

	pageURL := s.docs.URL(path, nil)
	sel, strategy, ok := extract.FirstMatch(doc, docContentStrategies)
	if !ok {
		slog.Debug("no content selector matched, converting full page", "crate", name, "version", version)
		md, err := extract.DocumentMarkdown(doc, pageURL)
		if err != nil {
			return "", fmt.Errorf("converting documentation page for %s/%s: %w", name, version, err)
		}
		return md, nil
	}

	slog.Debug("extracted documentation content", "crate", name, "strategy", strategy)
	md, err := extract.Markdown(sel, pageURL)
	if err != nil {
		return "", fmt.Errorf("converting documentation for %s/%s: %w", name, version, err)
	}
	return md, nil
}
