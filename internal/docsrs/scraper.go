// Package docsrs implements the scraping and normalization layer: one
// operation per exposed capability, each composing the two origin adapters
// with selector-based extraction and mapping the result into a stable schema.
//
// Upstream markup is semi-stable. Every HTML-backed operation carries an
// ordered selector fallback chain so that markup drift degrades extraction
// quality instead of breaking the operation.
package docsrs

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/timjonaswechler/rust-docs-mcp-server/internal/config"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/httpx"
)

// Scraper holds the two origin adapters. It is stateless; every operation is
// independent and safe for concurrent use.
type Scraper struct {
	registry *httpx.Client // crates.io JSON API
	docs     *httpx.Client // docs.rs HTML pages
}

// New builds a Scraper from pre-configured origin adapters.
func New(registry, docs *httpx.Client) *Scraper {
	return &Scraper{registry: registry, docs: docs}
}

// FromConfig wires both origin adapters with their fixed header sets.
func FromConfig(cfg *config.Config) (*Scraper, error) {
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second

	registry, err := httpx.New(cfg.Origins.CratesIO, map[string]string{
		"User-Agent": cfg.HTTP.UserAgent,
		"Accept":     "application/json",
	}, timeout)
	if err != nil {
		return nil, fmt.Errorf("creating registry client: %w", err)
	}

	docs, err := httpx.New(cfg.Origins.DocsRS, map[string]string{
		"User-Agent": cfg.HTTP.UserAgent,
		"Accept":     "text/html,application/xhtml+xml,application/json",
	}, timeout)
	if err != nil {
		return nil, fmt.Errorf("creating docs client: %w", err)
	}

	return New(registry, docs), nil
}

// crateIdent converts a Cargo package name to the rustdoc path identifier
// (hyphens become underscores).
func crateIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// orLatest substitutes the "latest" alias for an absent version.
func orLatest(version string) string {
	if version == "" {
		return "latest"
	}
	return version
}

// resolveHref resolves an anchor href against the page it appeared on.
func resolveHref(pageURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// expectHTML guards HTML-backed operations against shape drift: a structured
// body where a page was expected is a distinct failure, not a parse error.
func expectHTML(resp *httpx.Response) error {
	if resp.Kind == httpx.KindJSON {
		return fmt.Errorf("%w: expected HTML, got %s", httpx.ErrShape, resp.ContentType)
	}
	return nil
}
