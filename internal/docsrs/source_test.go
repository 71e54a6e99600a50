package docsrs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sourcePage = `<html><body>
<div class="src"><pre>fn main() {
    println!("hello");
}</pre></div>
</body></html>`

func TestGetSourceCode_FirstCandidateWins(t *testing.T) {
	var paths []string
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(sourcePage))
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	code, err := s.GetSourceCode(context.Background(), "tokio", "latest", "lib.rs")
	if err != nil {
		t.Fatalf("GetSourceCode failed: %v", err)
	}

	if len(paths) != 1 {
		t.Errorf("expected exactly one request after first success, got %v", paths)
	}
	if paths[0] != "/crate/tokio/latest/source/src/tokio/lib.rs" {
		t.Errorf("unexpected first candidate %q", paths[0])
	}
	if !strings.Contains(code, `println!("hello");`) {
		t.Errorf("expected source body, got:\n%s", code)
	}
}

func TestGetSourceCode_FallsThroughCandidates(t *testing.T) {
	var paths []string
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if len(paths) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><pre>mod runtime;</pre></body></html>`))
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	code, err := s.GetSourceCode(context.Background(), "tokio", "1.40.0", "lib.rs")
	if err != nil {
		t.Fatalf("GetSourceCode failed: %v", err)
	}

	want := []string{
		"/crate/tokio/1.40.0/source/src/tokio/lib.rs",
		"/crate/tokio/1.40.0/source/lib.rs",
		"/tokio/1.40.0/src/tokio/lib.rs",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d probes, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("probe %d = %q, want %q", i, paths[i], want[i])
		}
	}
	if !strings.Contains(code, "mod runtime;") {
		t.Errorf("unexpected code: %q", code)
	}
}

func TestGetSourceCode_AllCandidatesFail(t *testing.T) {
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer docs.Close()

	s := testScraper(t, docs.URL, docs.URL)
	_, err := s.GetSourceCode(context.Background(), "tokio", "latest", "missing.rs")
	if err == nil {
		t.Fatal("expected error when every candidate fails")
	}

	for _, fragment := range []string{
		"/crate/tokio/latest/source/src/tokio/missing.rs",
		"/crate/tokio/latest/source/missing.rs",
		"/tokio/latest/src/tokio/missing.rs",
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error should name attempted pattern %q, got: %v", fragment, err)
		}
	}
}

func TestGetSourceCode_Validation(t *testing.T) {
	s := testScraper(t, "https://crates.io", "https://docs.rs")
	if _, err := s.GetSourceCode(context.Background(), "", "latest", "lib.rs"); err == nil {
		t.Error("expected error for empty crate name")
	}
	if _, err := s.GetSourceCode(context.Background(), "tokio", "latest", ""); err == nil {
		t.Error("expected error for empty file path")
	}
}
