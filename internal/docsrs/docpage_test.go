package docsrs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const crateDocPage = `<html><body>
<nav class="sidebar"><a href="/">docs.rs</a></nav>
<div class="rustdoc">
  <h1>Crate serde</h1>
  <div class="docblock">
    <p>Serde is a framework for serializing and deserializing Rust data structures.</p>
    <pre><code>use serde::{Serialize, Deserialize};</code></pre>
  </div>
</div>
</body></html>`

func TestGetCrateDocumentation(t *testing.T) {
	var requestedPath string
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(crateDocPage))
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	md, err := s.GetCrateDocumentation(context.Background(), "serde", "")
	if err != nil {
		t.Fatalf("GetCrateDocumentation failed: %v", err)
	}

	if requestedPath != "/serde/latest/serde/" {
		t.Errorf("requested %q, want /serde/latest/serde/", requestedPath)
	}
	if !strings.Contains(md, "# Crate serde") {
		t.Errorf("expected heading in markdown:\n%s", md)
	}
	if !strings.Contains(md, "use serde::{Serialize, Deserialize};") {
		t.Errorf("expected code preserved:\n%s", md)
	}
	if strings.Contains(md, "[docs.rs](") {
		t.Errorf("expected sidebar stripped:\n%s", md)
	}
}

func TestGetCrateDocumentation_HyphenatedCrate(t *testing.T) {
	var requestedPath string
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(crateDocPage))
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	if _, err := s.GetCrateDocumentation(context.Background(), "tracing-core", "0.1.32"); err != nil {
		t.Fatalf("GetCrateDocumentation failed: %v", err)
	}
	if requestedPath != "/tracing-core/0.1.32/tracing_core/" {
		t.Errorf("requested %q, want /tracing-core/0.1.32/tracing_core/", requestedPath)
	}
}

func TestGetCrateDocumentation_FullPageFallback(t *testing.T) {
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>Unrecognized layout, still readable.</p></body></html>`))
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	md, err := s.GetCrateDocumentation(context.Background(), "serde", "latest")
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if strings.TrimSpace(md) == "" {
		t.Error("fallback must return non-empty readable text")
	}
	if !strings.Contains(md, "Unrecognized layout") {
		t.Errorf("expected page text in fallback output:\n%s", md)
	}
}

func TestGetCrateDocumentation_Validation(t *testing.T) {
	s := testScraper(t, "https://crates.io", "https://docs.rs")
	if _, err := s.GetCrateDocumentation(context.Background(), "", ""); err == nil {
		t.Error("expected validation error for empty crate name")
	}
}

func TestGetCrateDocumentation_UpstreamError(t *testing.T) {
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	if _, err := s.GetCrateDocumentation(context.Background(), "serde", ""); err == nil {
		t.Error("expected error for upstream failure")
	}
}
