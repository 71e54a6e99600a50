package docsrs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/timjonaswechler/rust-docs-mcp-server/internal/extract"
)

// kindMarkers map rustdoc marker classes to symbol kinds, tested in priority
// order. The first class present on the page wins.
var kindMarkers = []struct {
	class string
	kind  TypeKind
}{
	{"struct", KindStruct},
	{"enum", KindEnum},
	{"trait", KindTrait},
	{"fn", KindFunction},
	{"macro", KindMacro},
	{"type", KindTypedef},
	{"typedef", KindTypedef},
	{"mod", KindModule},
}

// descriptionStrategies locate the first description paragraph on an item page.
var descriptionStrategies = []extract.Strategy{
	{Name: "top-doc", Selector: ".top-doc .docblock p"},
	{Name: "docblock", Selector: ".docblock p"},
}

// GetTypeInfo inspects one documented symbol. The documentation URL is
// derived from crate, version, and path before any extraction happens, so it
// is populated even when the page yields nothing.
func (s *Scraper) GetTypeInfo(ctx context.Context, name, version, itemPath string) (*RustType, error) {
	if name == "" {
		return nil, fmt.Errorf("crate name must not be empty")
	}
	if itemPath == "" {
		return nil, fmt.Errorf("item path must not be empty")
	}
	version = orLatest(version)

	slog.Info("fetching type info", "crate", name, "version", version, "path", itemPath)

	pagePath := fmt.Sprintf("/%s/%s/%s/%s", name, version, crateIdent(name), itemPath)
	result := &RustType{
		Name:   itemDisplayName(itemPath),
		Kind:   KindOther,
		Path:   itemPath,
		DocURL: s.docs.URL(pagePath, nil),
	}

	resp, err := s.docs.Get(ctx, pagePath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching type info for %s in %s/%s: %w", itemPath, name, version, err)
	}
	if err := expectHTML(resp); err != nil {
		return nil, fmt.Errorf("fetching type info for %s in %s/%s: %w", itemPath, name, version, err)
	}

	doc, err := extract.Parse(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing item page for %s: %w", itemPath, err)
	}

	for _, m := range kindMarkers {
		sel := fmt.Sprintf("h1 .%s, .main-heading .%s", m.class, m.class)
		if doc.Find(sel).Length() > 0 {
			result.Kind = m.kind
			break
		}
	}

	if desc := extract.Text(doc, descriptionStrategies); desc != extract.NotFound {
		result.Description = desc
	}

	if href, ok := doc.Find("a.src, .src-link a, a.srclink").First().Attr("href"); ok {
		result.SourceURL = resolveHref(result.DocURL, href)
	}

	return result, nil
}

// itemDisplayName derives the symbol name from the final path segment:
// "runtime/struct.Runtime.html" yields "Runtime", "runtime/index.html"
// yields "runtime".
func itemDisplayName(itemPath string) string {
	segment := itemPath
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	segment = strings.TrimSuffix(segment, ".html")

	if segment == "index" || segment == "" {
		parts := strings.Split(strings.Trim(itemPath, "/"), "/")
		if len(parts) >= 2 {
			return parts[len(parts)-2]
		}
		return segment
	}

	if idx := strings.LastIndex(segment, "."); idx >= 0 {
		return segment[idx+1:]
	}
	return segment
}
