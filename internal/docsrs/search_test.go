package docsrs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchCrates(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/crates" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("q"); got != "serde" {
			t.Errorf("expected q=serde, got %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("expected per_page=10, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"crates": [
				{"name": "serde", "max_version": "1.0.210", "description": "A serialization framework"},
				{"name": "serde_json", "max_version": "", "newest_version": "1.0.128"},
				{"name": "serde_yaml", "max_version": ""}
			],
			"meta": {"total": 5123}
		}`))
	}))
	defer registry.Close()

	s := testScraper(t, registry.URL, registry.URL)
	result, err := s.SearchCrates(context.Background(), SearchOptions{Query: "serde"})
	if err != nil {
		t.Fatalf("SearchCrates failed: %v", err)
	}

	if len(result.Crates) != 3 {
		t.Fatalf("expected 3 crates, got %d", len(result.Crates))
	}
	if result.Total != 5123 {
		t.Errorf("expected total 5123, got %d", result.Total)
	}
	if result.Total < len(result.Crates) {
		t.Errorf("total %d < item count %d", result.Total, len(result.Crates))
	}

	first := result.Crates[0]
	if first.Name != "serde" || first.Version != "1.0.210" {
		t.Errorf("unexpected first crate: %+v", first)
	}
	if first.Description != "A serialization framework" {
		t.Errorf("unexpected description: %q", first.Description)
	}
	if result.Crates[1].Version != "1.0.128" {
		t.Errorf("expected newest_version fallback, got %q", result.Crates[1].Version)
	}
	if result.Crates[2].Version != "unknown" {
		t.Errorf("expected synthesized unknown version, got %q", result.Crates[2].Version)
	}
}

func TestSearchCrates_TotalFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "missing meta",
			body: `{"crates": [{"name": "a", "max_version": "1.0.0"}, {"name": "b", "max_version": "2.0.0"}]}`,
			want: 2,
		},
		{
			name: "malformed total",
			body: `{"crates": [{"name": "a", "max_version": "1.0.0"}], "meta": {"total": "oops"}}`,
			want: 1,
		},
		{
			name: "total below page count",
			body: `{"crates": [{"name": "a", "max_version": "1.0.0"}, {"name": "b", "max_version": "2.0.0"}], "meta": {"total": 1}}`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := testScraper(t, server.URL, server.URL)
			result, err := s.SearchCrates(context.Background(), SearchOptions{Query: "x"})
			if err != nil {
				t.Fatalf("SearchCrates failed: %v", err)
			}
			if result.Total != tt.want {
				t.Errorf("total = %d, want %d", result.Total, tt.want)
			}
		})
	}
}

func TestSearchCrates_EmptyQuery(t *testing.T) {
	s := testScraper(t, "https://crates.io", "https://docs.rs")
	if _, err := s.SearchCrates(context.Background(), SearchOptions{}); err == nil {
		t.Error("expected validation error for empty query")
	}
}

func TestSearchCrates_HTMLResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	s := testScraper(t, server.URL, server.URL)
	if _, err := s.SearchCrates(context.Background(), SearchOptions{Query: "serde"}); err == nil {
		t.Error("expected shape error for HTML response")
	}
}
