package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type localityRecord struct {
	Name     string
	State    string
	Postcode string
	Lat      float64
	Lon      float64
}

type contractorRecord struct {
	ID                uuid.UUID
	ExternalCRMID     *string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Gender            string
	City              string
	State             string
	PostalCode        string
	Lat               *float64
	Lon               *float64
	Title             string
	YearsOfExperience *int
	Qualifications    string
	Languages         []string
	HasVehicle        bool
	About             string
	FunFact           string
	Hobbies           string
	WhatMakesMeUnique string
	ProfileImage      string
}

// row gives access to a CSV record by header name.
type row struct {
	line   int
	index  map[string]int
	values []string
}

func (r row) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r row) optionalFloat(column string) (*float64, error) {
	raw := r.get(column)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid %s: %s", r.line, column, raw)
	}
	return &v, nil
}

func readRows(src io.Reader, required []string, fn func(row) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing required column %q", col)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if err := fn(row{line: line, index: index, values: record}); err != nil {
			return err
		}
	}
}

func parseLocalities(src io.Reader) ([]localityRecord, error) {
	var records []localityRecord
	err := readRows(src, []string{"name", "state", "latitude", "longitude"}, func(r row) error {
		lat, err := r.optionalFloat("latitude")
		if err != nil {
			return err
		}
		lon, err := r.optionalFloat("longitude")
		if err != nil {
			return err
		}
		if lat == nil || lon == nil {
			return fmt.Errorf("line %d: latitude and longitude are required", r.line)
		}
		if r.get("name") == "" {
			return fmt.Errorf("line %d: name is required", r.line)
		}

		records = append(records, localityRecord{
			Name:     r.get("name"),
			State:    strings.ToUpper(r.get("state")),
			Postcode: r.get("postcode"),
			Lat:      *lat,
			Lon:      *lon,
		})
		return nil
	})
	return records, err
}

func parseContractors(src io.Reader) ([]contractorRecord, error) {
	var records []contractorRecord
	err := readRows(src, []string{"first_name"}, func(r row) error {
		c := contractorRecord{
			FirstName:         r.get("first_name"),
			LastName:          r.get("last_name"),
			Email:             r.get("email"),
			Phone:             r.get("phone"),
			Gender:            r.get("gender"),
			City:              r.get("city"),
			State:             r.get("state"),
			PostalCode:        r.get("postal_code"),
			Title:             r.get("title"),
			Qualifications:    r.get("qualifications"),
			Languages:         splitList(r.get("languages")),
			About:             r.get("about"),
			FunFact:           r.get("fun_fact"),
			Hobbies:           r.get("hobbies"),
			WhatMakesMeUnique: r.get("what_makes_me_unique"),
			ProfileImage:      r.get("profile_image"),
		}

		c.ID = uuid.New()
		if raw := r.get("id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("line %d: invalid id: %s", r.line, raw)
			}
			c.ID = id
		}
		if raw := r.get("external_crm_id"); raw != "" {
			c.ExternalCRMID = &raw
		}

		var err error
		if c.Lat, err = r.optionalFloat("latitude"); err != nil {
			return err
		}
		if c.Lon, err = r.optionalFloat("longitude"); err != nil {
			return err
		}
		if (c.Lat == nil) != (c.Lon == nil) {
			c.Lat, c.Lon = nil, nil
		}

		if raw := r.get("years_of_experience"); raw != "" {
			years, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("line %d: invalid years_of_experience: %s", r.line, raw)
			}
			c.YearsOfExperience = &years
		}
		if raw := r.get("has_vehicle"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("line %d: invalid has_vehicle: %s", r.line, raw)
			}
			c.HasVehicle = v
		}

		records = append(records, c)
		return nil
	})
	return records, err
}

// splitList splits "English|Arabic" or "English;Arabic" into trimmed items.
func splitList(raw string) []string {
	items := strings.FieldsFunc(raw, func(r rune) bool { return r == '|' || r == ';' })
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
