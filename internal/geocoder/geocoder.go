// Package geocoder resolves free-text Australian locations to coordinates.
//
// A Geocoder returns (nil, nil) when the text has no match. Errors are provider failures;
// callers treat both outcomes as "no coordinate".
package geocoder

import (
	"context"
	"errors"
	"fmt"

	"contractor-directory-api/internal/models"
)

// Geocoder resolves a location term to a single coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (*models.Coordinate, error)
}

// Chain tries each geocoder in order and returns the first match.
type Chain []Geocoder

// Geocode returns the first coordinate found. Provider errors are skipped over and
// only reported when no geocoder in the chain produced a match.
func (c Chain) Geocode(ctx context.Context, text string) (*models.Coordinate, error) {
	var errs []error
	for i, g := range c {
		coord, err := g.Geocode(ctx, text)
		if err != nil {
			errs = append(errs, fmt.Errorf("geocoder %d: %w", i, err))
			continue
		}
		if coord != nil {
			return coord, nil
		}
	}
	return nil, errors.Join(errs...)
}
