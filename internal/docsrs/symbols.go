package docsrs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/httpx"
)

// symbolSections are the kind-labeled sections of the rustdoc all-symbols
// index, keyed by heading id.
var symbolSections = []struct {
	id   string
	kind string
}{
	{"structs", "struct"},
	{"enums", "enum"},
	{"traits", "trait"},
	{"functions", "function"},
	{"macros", "macro"},
	{"derives", "derive"},
	{"mods", "module"},
}

// SearchSymbols filters the crate's all-symbols index by case-insensitive
// substring match against the symbol name or its fully qualified path. A
// crate without an index page yields an empty list, not an error.
func (s *Scraper) SearchSymbols(ctx context.Context, name, version, query string) ([]SymbolDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("crate name must not be empty")
	}
	if query == "" {
		return nil, fmt.Errorf("symbol query must not be empty")
	}
	version = orLatest(version)

	slog.Info("searching symbols", "crate", name, "version", version, "query", query)

	path := fmt.Sprintf("/%s/%s/%s/all.html", name, version, crateIdent(name))
	resp, err := s.docs.Get(ctx, path, nil)
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			slog.Debug("all-symbols index absent", "crate", name, "version", version)
			return nil, nil
		}
		return nil, fmt.Errorf("fetching symbol index for %s/%s: %w", name, version, err)
	}
	if err := expectHTML(resp); err != nil {
		return nil, fmt.Errorf("fetching symbol index for %s/%s: %w", name, version, err)
	}

	doc, err := extract.Parse(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing symbol index for %s/%s: %w", name, version, err)
	}

	pageURL := s.docs.URL(path, nil)
	needle := strings.ToLower(query)

	var symbols []SymbolDefinition
	for _, section := range symbolSections {
		heading := doc.Find("#" + section.id).First()
		if heading.Length() == 0 {
			continue
		}
		list := heading.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			list = heading.Parent().Find("ul").First()
		}
		list.Find("li a").Each(func(_ int, a *goquery.Selection) {
			qualified := strings.TrimSpace(a.Text())
			if qualified == "" {
				return
			}
			display := symbolDisplayName(qualified)
			if !strings.Contains(strings.ToLower(display), needle) &&
				!strings.Contains(strings.ToLower(qualified), needle) {
				return
			}
			href, _ := a.Attr("href")
			symbols = append(symbols, SymbolDefinition{
				Name:   display,
				Kind:   section.kind,
				Path:   qualified,
				DocURL: resolveHref(pageURL, href),
			})
		})
	}
	return symbols, nil
}

// symbolDisplayName is the final segment of a fully qualified path:
// "tokio::runtime::Runtime" yields "Runtime".
func symbolDisplayName(qualified string) string {
	if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
		return qualified[idx+2:]
	}
	return qualified
}
