package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contractor-directory-api/internal/metrics"
	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/search"

	masker "github.com/ggwhite/go-masker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ContractorStore is the persistence layer consumed by the search service.
type ContractorStore interface {
	FindMany(ctx context.Context, f search.Filter, limit, offset int) ([]models.Contractor, error)
	Count(ctx context.Context, f search.Filter) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
}

// Geocoder resolves free-text locations. A nil coordinate means no match.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (*models.Coordinate, error)
}

// SearchOptions toggles optional search behaviour.
type SearchOptions struct {
	// BoundingBoxPrefilter narrows the SQL query to the radius box when a coordinate and distance are known.
	BoundingBoxPrefilter bool
	// ReportRankedTotal reports the post-ranking row count as pagination.total.
	ReportRankedTotal bool
	// MaskContactDetails masks email and phone in search results.
	MaskContactDetails bool
}

// SearchResult is the assembled search response.
type SearchResult struct {
	Contractors    []models.RankedContractor
	Pagination     search.Pagination
	SearchLocation *models.Coordinate
}

// ContractorSearchService runs the contractor search pipeline.
type ContractorSearchService struct {
	store    ContractorStore
	geocoder Geocoder
	opts     SearchOptions
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewContractorSearchService creates a new contractor search service. geocoder may be nil.
func NewContractorSearchService(store ContractorStore, geocoder Geocoder, opts SearchOptions, m *metrics.Metrics, logger zerolog.Logger) *ContractorSearchService {
	return &ContractorSearchService{
		store:    store,
		geocoder: geocoder,
		opts:     opts,
		metrics:  m,
		logger:   logger,
	}
}

// Search filters, fetches, ranks and paginates contractors for a validated query.
func (s *ContractorSearchService) Search(ctx context.Context, q search.Query) (*SearchResult, error) {
	start := time.Now()

	var parsed *search.ParsedLocation
	var origin *models.Coordinate
	if q.HasLocation() {
		p := search.ParseLocation(q.Location)
		parsed = &p
		origin = s.resolve(ctx, q.Location)
	}

	filter := search.BuildFilter(q, parsed)
	if s.opts.BoundingBoxPrefilter && origin != nil && q.DistanceKm != nil {
		box := search.NewBoundingBox(*origin, *q.DistanceKm)
		filter.BoundingBox = &box
	}

	rows, total, err := s.fetch(ctx, filter, q)
	if err != nil {
		s.metrics.ObserveSearch(metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	// Pure state and postcode searches keep fetch order unless a radius was asked for.
	rankOrigin := origin
	if parsed != nil && parsed.Kind != search.KindGeocodeAndRank && q.DistanceKm == nil {
		rankOrigin = nil
	}
	ranked := search.RankByDistance(rows, rankOrigin, q.DistanceKm)

	pagination := search.Paginate(q, total)
	if rankOrigin != nil && s.opts.ReportRankedTotal {
		pagination.Total = len(ranked)
	}

	if s.opts.MaskContactDetails {
		for i := range ranked {
			maskContact(&ranked[i].Contractor)
		}
	}

	s.logger.Debug().
		Str("location", q.Location).
		Bool("geocoded", origin != nil).
		Int("sql_total", total).
		Int("returned", len(ranked)).
		Msg("contractor search")
	s.metrics.ObserveSearch(metrics.OutcomeOK, time.Since(start))

	return &SearchResult{
		Contractors:    ranked,
		Pagination:     pagination,
		SearchLocation: origin,
	}, nil
}

// Get returns a single visible contractor.
func (s *ContractorSearchService) Get(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	contractor, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get contractor: %w", err)
	}
	return contractor, nil
}

func (s *ContractorSearchService) resolve(ctx context.Context, location string) *models.Coordinate {
	if s.geocoder == nil {
		return nil
	}

	coord, err := s.geocoder.Geocode(ctx, location)
	switch {
	case err != nil:
		s.metrics.GeocodeResult(metrics.GeocodeError)
		s.logger.Warn().Err(err).Str("location", location).Msg("geocoding failed, skipping distance ranking")
		return nil
	case coord == nil:
		s.metrics.GeocodeResult(metrics.GeocodeMiss)
		s.logger.Debug().Str("location", location).Msg("location not geocoded")
		return nil
	}
	s.metrics.GeocodeResult(metrics.GeocodeHit)
	return coord
}

func (s *ContractorSearchService) fetch(ctx context.Context, f search.Filter, q search.Query) ([]models.Contractor, int, error) {
	var rows []models.Contractor
	var total int

	limit := q.Limit
	if q.Unbounded {
		limit = 0
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.FindMany(gctx, f, limit, q.Offset)
		if err != nil {
			return fmt.Errorf("service: failed to find contractors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, f)
		if err != nil {
			return fmt.Errorf("service: failed to count contractors: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func maskContact(c *models.Contractor) {
	if strings.Contains(c.Email, "@") {
		c.Email = masker.Email(c.Email)
	}
	if c.Phone != "" {
		c.Phone = masker.Mobile(c.Phone)
	}
}
