// Package markdown post-processes converted documentation markdown.
package markdown

import (
	"net/url"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// ResolveLinks rewrites relative markdown link destinations against the page
// URL they were extracted from. It parses the markdown to AST to find link
// destinations, then performs targeted string replacements to preserve the
// original formatting. Absolute URLs, fragments, and mailto links are left
// untouched.
func ResolveLinks(src, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return src
	}

	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	type replacement struct {
		oldDest string
		newDest string
	}
	seen := make(map[string]bool)
	var replacements []replacement

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		link, ok := node.(*ast.Link)
		if !ok {
			return ast.GoToNext
		}
		dest := string(link.Destination)
		if dest == "" || seen[dest] || !isRelative(dest) {
			return ast.GoToNext
		}
		ref, err := url.Parse(dest)
		if err != nil {
			return ast.GoToNext
		}
		seen[dest] = true
		replacements = append(replacements, replacement{dest, base.ResolveReference(ref).String()})
		return ast.GoToNext
	})

	if len(replacements) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination)
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	// Reference-style definitions: [ref]: destination
	refMap := make(map[string]string, len(replacements))
	for _, r := range replacements {
		refMap["]: "+r.oldDest] = "]: " + r.newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

func isRelative(dest string) bool {
	if strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "mailto:") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
