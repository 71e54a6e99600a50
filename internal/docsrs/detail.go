package docsrs

import (
	"context"
	"fmt"
	"log/slog"
)

// GetCrateDetails fetches crate metadata and its full version list from the
// registry in one call.
func (s *Scraper) GetCrateDetails(ctx context.Context, name string) (*CrateDetails, error) {
	if name == "" {
		return nil, fmt.Errorf("crate name must not be empty")
	}

	slog.Info("fetching crate details", "crate", name)

	resp, err := s.registry.Get(ctx, "/api/v1/crates/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching details for crate %q: %w", name, err)
	}

	var payload struct {
		Crate struct {
			Name          string `json:"name"`
			Description   string `json:"description"`
			Downloads     int    `json:"downloads"`
			Homepage      string `json:"homepage"`
			Repository    string `json:"repository"`
			Documentation string `json:"documentation"`
		} `json:"crate"`
		Versions []struct {
			Num       string `json:"num"`
			Yanked    bool   `json:"yanked"`
			CreatedAt string `json:"created_at"`
		} `json:"versions"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, fmt.Errorf("decoding details for crate %q: %w", name, err)
	}

	if payload.Crate.Downloads < 0 {
		return nil, fmt.Errorf("crate %q reported negative download count %d", name, payload.Crate.Downloads)
	}

	versions := make([]CrateVersion, 0, len(payload.Versions))
	for _, v := range payload.Versions {
		if v.Num == "" {
			continue
		}
		versions = append(versions, CrateVersion{
			Version:     v.Num,
			Yanked:      v.Yanked,
			ReleaseDate: v.CreatedAt,
		})
	}

	return &CrateDetails{
		Name:          payload.Crate.Name,
		Description:   payload.Crate.Description,
		Downloads:     payload.Crate.Downloads,
		Homepage:      payload.Crate.Homepage,
		Repository:    payload.Crate.Repository,
		Documentation: payload.Crate.Documentation,
		Versions:      versions,
	}, nil
}
