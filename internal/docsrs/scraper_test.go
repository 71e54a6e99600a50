package docsrs

import (
	"testing"
	"time"

	"github.com/timjonaswechler/rust-docs-mcp-server/internal/httpx"
)

// testScraper wires a Scraper against httptest origins.
func testScraper(t *testing.T, registryURL, docsURL string) *Scraper {
	t.Helper()
	registry, err := httpx.New(registryURL, map[string]string{"Accept": "application/json"}, 5*time.Second)
	if err != nil {
		t.Fatalf("creating registry client: %v", err)
	}
	docs, err := httpx.New(docsURL, map[string]string{"Accept": "text/html"}, 5*time.Second)
	if err != nil {
		t.Fatalf("creating docs client: %v", err)
	}
	return New(registry, docs)
}

func TestCrateIdent(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"serde", "serde"},
		{"tracing-core", "tracing_core"},
		{"async-graphql-parser", "async_graphql_parser"},
	}
	for _, tt := range tests {
		if got := crateIdent(tt.name); got != tt.want {
			t.Errorf("crateIdent(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOrLatest(t *testing.T) {
	if got := orLatest(""); got != "latest" {
		t.Errorf("orLatest(\"\") = %q, want latest", got)
	}
	if got := orLatest("1.0.0"); got != "1.0.0" {
		t.Errorf("orLatest(1.0.0) = %q", got)
	}
}

func TestResolveHref(t *testing.T) {
	tests := []struct {
		page string
		href string
		want string
	}{
		{
			"https://docs.rs/tokio/latest/tokio/runtime/struct.Runtime.html",
			"../../src/tokio/runtime/runtime.rs.html",
			"https://docs.rs/tokio/latest/src/tokio/runtime/runtime.rs.html",
		},
		{
			"https://docs.rs/tokio/latest/tokio/all.html",
			"runtime/struct.Runtime.html",
			"https://docs.rs/tokio/latest/tokio/runtime/struct.Runtime.html",
		},
		{
			"https://docs.rs/tokio/latest/tokio/all.html",
			"https://example.com/x",
			"https://example.com/x",
		},
		{"https://docs.rs/x", "", ""},
	}
	for _, tt := range tests {
		if got := resolveHref(tt.page, tt.href); got != tt.want {
			t.Errorf("resolveHref(%q, %q) = %q, want %q", tt.page, tt.href, got, tt.want)
		}
	}
}
