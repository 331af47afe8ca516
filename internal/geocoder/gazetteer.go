package geocoder

import (
	"context"
	"fmt"
	"strings"

	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/search"
)

// LocalitySearcher finds gazetteer entries by free text, best match first.
type LocalitySearcher interface {
	SearchLocalitiesByText(ctx context.Context, query string, limit int) ([]models.Locality, error)
}

// Gazetteer geocodes against the local locality table.
type Gazetteer struct {
	repo LocalitySearcher
}

// NewGazetteer creates a gazetteer geocoder
func NewGazetteer(repo LocalitySearcher) *Gazetteer {
	return &Gazetteer{repo: repo}
}

// Geocode looks the term up as "<place> <STATE> <postcode>" so full state names match the stored abbreviations.
func (g *Gazetteer) Geocode(ctx context.Context, text string) (*models.Coordinate, error) {
	query := gazetteerQuery(text)
	if query == "" {
		return nil, nil
	}

	localities, err := g.repo.SearchLocalitiesByText(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}
	if len(localities) == 0 {
		return nil, nil
	}

	coord := localities[0].Coordinate()
	return &coord, nil
}

func gazetteerQuery(text string) string {
	parsed := search.ParseLocation(strings.TrimSpace(text))
	parts := make([]string, 0, 3)
	for _, p := range []string{parsed.CityRemainder, parsed.StateCode, parsed.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
