package repository

import (
	"context"
	"errors"
	"fmt"

	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/search"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no visible row.
var ErrNotFound = errors.New("repository: not found")

var contractorColumns = []string{
	"id",
	"external_crm_id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"gender",
	"city",
	"state",
	"postal_code",
	"latitude",
	"longitude",
	"title",
	"years_of_experience",
	"qualifications",
	"languages",
	"has_vehicle",
	"about",
	"fun_fact",
	"hobbies",
	"what_makes_me_unique",
	"profile_image",
	"created_at",
	"updated_at",
	"last_synced_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ContractorRepository reads contractor profiles from PostgreSQL
type ContractorRepository struct {
	db *pgxpool.Pool
}

// NewContractorRepository creates a new contractor repository
func NewContractorRepository(db *pgxpool.Pool) *ContractorRepository {
	return &ContractorRepository{db: db}
}

// findManyQuery builds the page query, newest first. A limit of zero means no limit.
func findManyQuery(f search.Filter, limit, offset int) sq.SelectBuilder {
	q := psql.Select(contractorColumns...).
		From("contractors").
		Where(filterCondition(f)).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

func countQuery(f search.Filter) sq.SelectBuilder {
	return psql.Select("COUNT(*)").From("contractors").Where(filterCondition(f))
}

// FindMany returns one page of visible contractors matching the filter
func (r *ContractorRepository) FindMany(ctx context.Context, f search.Filter, limit, offset int) ([]models.Contractor, error) {
	sql, args, err := findManyQuery(f, limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build contractor query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute contractor query: %w", err)
	}
	defer rows.Close()

	contractors := make([]models.Contractor, 0)
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan contractor: %w", err)
		}
		contractors = append(contractors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return contractors, nil
}

// Count returns the number of visible contractors matching the filter
func (r *ContractorRepository) Count(ctx context.Context, f search.Filter) (int, error) {
	sql, args, err := countQuery(f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("repository: failed to count contractors: %w", err)
	}
	return total, nil
}

// FindByID returns a single visible contractor
func (r *ContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	sql, args, err := psql.Select(contractorColumns...).
		From("contractors").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build contractor query: %w", err)
	}

	c, err := scanContractor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to fetch contractor: %w", err)
	}
	return &c, nil
}

func scanContractor(row pgx.Row) (models.Contractor, error) {
	var c models.Contractor
	err := row.Scan(
		&c.ID,
		&c.ExternalCRMID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Gender,
		&c.City,
		&c.State,
		&c.PostalCode,
		&c.Latitude,
		&c.Longitude,
		&c.Title,
		&c.YearsOfExperience,
		&c.Qualifications,
		&c.Languages,
		&c.HasVehicle,
		&c.About,
		&c.FunFact,
		&c.Hobbies,
		&c.WhatMakesMeUnique,
		&c.ProfileImage,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.LastSyncedAt,
	)
	return c, err
}
