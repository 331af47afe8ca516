package repository

import (
	"context"
	"errors"
	"fmt"

	"contractor-directory-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocalityRepository reads the Australian locality gazetteer from PostgreSQL
type LocalityRepository struct {
	db *pgxpool.Pool
}

// NewLocalityRepository creates a new PostgreSQL locality repository
func NewLocalityRepository(db *pgxpool.Pool) *LocalityRepository {
	return &LocalityRepository{db: db}
}

// SearchLocalitiesByText performs a full-text search on the localities table, best match first
func (r *LocalityRepository) SearchLocalitiesByText(ctx context.Context, query string, limit int) ([]models.Locality, error) {
	sql := `
		SELECT
			id,
			name,
			state,
			postcode,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM localities
		WHERE search_tsvector @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(search_tsvector, plainto_tsquery('simple', $1)) DESC, id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	localities := make([]models.Locality, 0)
	for rows.Next() {
		var loc models.Locality
		err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.State,
			&loc.Postcode,
			&loc.Latitude,
			&loc.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan locality: %w", err)
		}
		localities = append(localities, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return localities, nil
}

// FindNearestLocality performs a spatial query to find the nearest locality within 10 km of the given coordinates.
// It returns nil without error when nothing is in range.
func (r *LocalityRepository) FindNearestLocality(ctx context.Context, lat, lon float64) (*models.Locality, error) {
	sql := `
		SELECT
			id,
			name,
			state,
			postcode,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM localities
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 10000)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	var loc models.Locality
	err := r.db.QueryRow(ctx, sql, lat, lon).Scan(
		&loc.ID,
		&loc.Name,
		&loc.State,
		&loc.Postcode,
		&loc.Latitude,
		&loc.Longitude,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	return &loc, nil
}
