// Package extract implements selector-based content extraction from upstream
// HTML pages. Each capability supplies an ordered list of selector strategies,
// most specific first; the first strategy with a non-empty match wins.
package extract

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/markdown"
)

// NotFound is the sentinel returned when no strategy matches. Absence of
// content is an expected outcome, not a failure.
const NotFound = "Content not found"

// Strategy is one named CSS selector in a fallback chain.
type Strategy struct {
	Name     string
	Selector string
}

// noiseSelectors are elements removed before converting a fragment to text.
// They carry navigation chrome, not documentation content.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", ".sidebar", ".mobile-topbar", ".sub",
	"#settings-menu", "#copy-path", ".out-of-band",
}

// Parse builds a goquery document from raw HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// FirstMatch evaluates strategies in order and returns the first non-empty
// selection along with the name of the strategy that produced it.
func FirstMatch(doc *goquery.Document, strategies []Strategy) (*goquery.Selection, string, bool) {
	for _, s := range strategies {
		sel := doc.Find(s.Selector)
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel.First(), s.Name, true
		}
	}
	return nil, "", false
}

// Text returns the trimmed text of the first matching strategy, or the
// NotFound sentinel when nothing matches.
func Text(doc *goquery.Document, strategies []Strategy) string {
	sel, _, ok := FirstMatch(doc, strategies)
	if !ok {
		return NotFound
	}
	return strings.TrimSpace(sel.Text())
}

// Markdown converts the selection into readable markdown, preserving
// headings, lists, code blocks, and links. Relative links are resolved
// against pageURL, the URL the fragment was extracted from.
func Markdown(sel *goquery.Selection, pageURL string) (string, error) {
	for _, noise := range noiseSelectors {
		sel.Find(noise).Remove()
	}
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", fmt.Errorf("serializing fragment: %w", err)
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return markdown.ResolveLinks(strings.TrimSpace(md), pageURL), nil
}

// DocumentMarkdown converts the whole page to readable markdown. Used as the
// defensive fallback when no selector strategy matches.
func DocumentMarkdown(doc *goquery.Document, pageURL string) (string, error) {
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	return Markdown(body, pageURL)
}
