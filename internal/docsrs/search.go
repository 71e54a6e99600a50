package docsrs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// SearchCrates searches the registry for crates matching the query. The
// reported total comes from the upstream's own count; it is only recomputed
// from the parsed items when the upstream total is absent or unparseable.
func (s *Scraper) SearchCrates(ctx context.Context, opts SearchOptions) (*CrateSearchResult, error) {
	if opts.Query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 10
	}

	slog.Info("searching crates", "query", opts.Query, "page", page, "per_page", perPage)

	resp, err := s.registry.Get(ctx, "/api/v1/crates", url.Values{
		"q":        {opts.Query},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	})
	if err != nil {
		return nil, fmt.Errorf("searching crates for %q: %w", opts.Query, err)
	}

	var payload struct {
		Crates []struct {
			Name          string `json:"name"`
			MaxVersion    string `json:"max_version"`
			NewestVersion string `json:"newest_version"`
			Description   string `json:"description"`
		} `json:"crates"`
		Meta struct {
			Total json.RawMessage `json:"total"`
		} `json:"meta"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, fmt.Errorf("decoding crate search response: %w", err)
	}

	crates := make([]CrateInfo, 0, len(payload.Crates))
	for _, c := range payload.Crates {
		if c.Name == "" {
			continue
		}
		version := c.MaxVersion
		if version == "" {
			version = c.NewestVersion
		}
		if version == "" {
			version = "unknown"
		}
		crates = append(crates, CrateInfo{
			Name:        c.Name,
			Version:     version,
			Description: c.Description,
		})
	}

	total := parseTotal(payload.Meta.Total, len(crates))
	return &CrateSearchResult{Crates: crates, Total: total}, nil
}

// parseTotal reads the upstream total, falling back to the parsed item count
// when the field is missing or malformed. The total never undercounts the
// current page.
func parseTotal(raw json.RawMessage, parsed int) int {
	if len(raw) == 0 {
		return parsed
	}
	var total int
	if err := json.Unmarshal(raw, &total); err != nil || total < parsed {
		return parsed
	}
	return total
}
