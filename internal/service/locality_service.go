package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contractor-directory-api/internal/models"
)

// ErrInvalidArgument marks caller-caused input errors.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultLookupLimit caps the number of localities returned by Lookup.
const DefaultLookupLimit = 10

// LocalityRepository interface for dependency injection
type LocalityRepository interface {
	SearchLocalitiesByText(ctx context.Context, query string, limit int) ([]models.Locality, error)
	FindNearestLocality(ctx context.Context, lat, lon float64) (*models.Locality, error)
}

// LocalityService contains the gazetteer lookup logic
type LocalityService struct {
	repo LocalityRepository
}

// NewLocalityService creates a new locality service
func NewLocalityService(repo LocalityRepository) *LocalityService {
	return &LocalityService{repo: repo}
}

// Lookup searches localities by free text using full-text search
func (s *LocalityService) Lookup(ctx context.Context, query string) ([]models.Locality, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty: %w", ErrInvalidArgument)
	}

	localities, err := s.repo.SearchLocalitiesByText(ctx, query, DefaultLookupLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search localities: %w", err)
	}

	return localities, nil
}

// Nearest finds the closest locality to the given coordinates. A nil result means none is close enough.
func (s *LocalityService) Nearest(ctx context.Context, lat, lon float64) (*models.Locality, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude %f: %w", lat, ErrInvalidArgument)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: invalid longitude %f: %w", lon, ErrInvalidArgument)
	}

	locality, err := s.repo.FindNearestLocality(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest locality: %w", err)
	}

	return locality, nil
}
