package docsrs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
)

// sourceBlockStrategies prefer the pre-styled source view, then any code
// block on the page.
var sourceBlockStrategies = []extract.Strategy{
	{Name: "src-pre", Selector: ".src pre"},
	{Name: "rust-pre", Selector: "pre.rust"},
	{Name: "example-pre", Selector: ".example-wrap pre"},
	{Name: "pre", Selector: "pre"},
	{Name: "code", Selector: "code"},
}

// sourcePathCandidates returns the candidate source-view paths in the order
// they must be probed. The docs.rs path scheme has shifted between upstream
// revisions, so the crate-qualified form is tried first, then the older
// variants.
func sourcePathCandidates(name, version, filePath string) []string {
	ident := crateIdent(name)
	filePath = strings.TrimPrefix(filePath, "/")
	return []string{
		fmt.Sprintf("/crate/%s/%s/source/src/%s/%s", name, version, ident, filePath),
		fmt.Sprintf("/crate/%s/%s/source/%s", name, version, filePath),
		fmt.Sprintf("/%s/%s/src/%s/%s", name, version, ident, filePath),
	}
}

// GetSourceCode fetches a source file from the docs.rs source view. Each
// candidate URL pattern is tried in order; the first successful response
// wins and no further candidates are probed. The operation fails only when
// every candidate fails, and the error names every attempted URL.
func (s *Scraper) GetSourceCode(ctx context.Context, name, version, filePath string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("crate name must not be empty")
	}
	if filePath == "" {
		return "", fmt.Errorf("source file path must not be empty")
	}
	version = orLatest(version)

	slog.Info("fetching source code", "crate", name, "version", version, "file", filePath)

	var attempted []string
	for _, path := range sourcePathCandidates(name, version, filePath) {
		fullURL := s.docs.URL(path, nil)

		resp, err := s.docs.Get(ctx, path, nil)
		if err != nil {
			slog.Debug("source candidate failed", "url", fullURL, "error", err)
			attempted = append(attempted, fullURL)
			continue
		}
		if err := expectHTML(resp); err != nil {
			attempted = append(attempted, fullURL)
			continue
		}

		doc, err := extract.Parse(string(resp.Body))
		if err != nil {
			return "", fmt.Errorf("parsing source view %s: %w", fullURL, err)
		}

		if text := extract.Text(doc, sourceBlockStrategies); text != extract.NotFound {
			return text, nil
		}
		// Page fetched but carries no recognizable source block; return its
		// text rather than probing further patterns.
		return strings.TrimSpace(doc.Find("body").Text()), nil
	}

	return "", fmt.Errorf("fetching source for %s/%s: all candidate paths failed: %s",
		name, version, strings.Join(attempted, ", "))
}
