package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"contractor-directory-api/internal/config"
	"contractor-directory-api/internal/logger"
	"contractor-directory-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

func main() {
	kind := flag.String("kind", "localities", "What the CSV holds: localities or contractors")
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log.Logger = logger.New(cfg.LogLevel, true)

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	src, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open file")
	}
	defer src.Close()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	// Ensure tables exist
	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		log.Fatal().Err(err).Msg("cannot create schema")
	}

	var table string
	var imported int
	switch *kind {
	case "localities":
		table = "localities"
		records, err := parseLocalities(src)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot parse CSV")
		}
		imported, err = importRows(ctx, conn, table, len(records), func() error {
			return insertLocalities(ctx, conn, records)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
	case "contractors":
		table = "contractors"
		records, err := parseContractors(src)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot parse CSV")
		}
		imported, err = importRows(ctx, conn, table, len(records), func() error {
			return insertContractors(ctx, conn, records)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
	default:
		log.Fatal().Str("kind", *kind).Msg("kind must be localities or contractors")
	}

	log.Info().Str("table", table).Int("rows", imported).Msg("import complete")
}

// importRows runs insert and checks the table grew by exactly expected rows.
func importRows(ctx context.Context, conn *pgx.Conn, table string, expected int, insert func() error) (int, error) {
	before, err := countRows(ctx, conn, table)
	if err != nil {
		return 0, err
	}
	log.Info().Str("table", table).Int("parsed", expected).Int("existing", before).Msg("starting import")

	if err := insert(); err != nil {
		return 0, fmt.Errorf("failed to insert records: %w", err)
	}

	after, err := countRows(ctx, conn, table)
	if err != nil {
		return 0, err
	}
	if after-before != expected {
		return 0, fmt.Errorf("record count mismatch: expected %d new rows, got %d", expected, after-before)
	}
	return expected, nil
}

func countRows(ctx context.Context, conn *pgx.Conn, table string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()
	if err := conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func insertLocalities(ctx context.Context, conn *pgx.Conn, records []localityRecord) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"localities"},
		[]string{"name", "state", "postcode", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Lon, r.Lat) // PostGIS format: lon lat
			return []interface{}{r.Name, r.State, r.Postcode, geom}, nil
		}),
	)
	return err
}

func insertContractors(ctx context.Context, conn *pgx.Conn, records []contractorRecord) error {
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"contractors"},
		[]string{
			"id", "external_crm_id", "first_name", "last_name", "email", "phone", "gender",
			"city", "state", "postal_code", "latitude", "longitude", "title", "years_of_experience",
			"qualifications", "languages", "has_vehicle", "about", "fun_fact", "hobbies",
			"what_makes_me_unique", "profile_image",
		},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			return []interface{}{
				r.ID, r.ExternalCRMID, r.FirstName, r.LastName, r.Email, r.Phone, r.Gender,
				r.City, r.State, r.PostalCode, r.Lat, r.Lon, r.Title, r.YearsOfExperience,
				r.Qualifications, r.Languages, r.HasVehicle, r.About, r.FunFact, r.Hobbies,
				r.WhatMakesMeUnique, r.ProfileImage,
			}, nil
		}),
	)
	return err
}
