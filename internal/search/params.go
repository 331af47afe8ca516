// Package search holds the pure parts of the contractor search pipeline:
// parameter normalisation, location parsing, filter construction, distance ranking and pagination.
package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size used when no limit is given.
	DefaultLimit = 10
	// MaxLimit caps every bounded page size.
	MaxLimit = 100

	// AllSentinel is the filter value meaning "no filter" for gender and support type.
	AllSentinel = "All"

	unboundedLimit = "all"
)

// Validation messages returned to the caller verbatim.
const (
	MsgInvalidLimit    = "Invalid limit parameter. Must be a positive integer or 'all'."
	MsgInvalidOffset   = "Invalid offset parameter. Must be a non-negative integer."
	MsgInvalidDistance = "Invalid distance parameter. Must be a positive number."
)

// ValidationError is a caller-caused parameter error.
type ValidationError struct {
	Message string
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Query is a validated contractor search request.
type Query struct {
	// Limit is in [1, MaxLimit] unless Unbounded is set, in which case it is zero.
	Limit     int
	Unbounded bool
	Offset    int

	Location   string
	DistanceKm *float64

	// Legacy discrete location fields, ignored when Location is set.
	City       string
	State      string
	PostalCode string

	Gender      string
	SupportType string
}

// HasLocation reports whether a combined location term was supplied.
func (q Query) HasLocation() bool {
	return q.Location != ""
}

// ParseQuery validates raw query parameters.
// The returned error is always a *ValidationError.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Limit:       DefaultLimit,
		Location:    strings.TrimSpace(values.Get("location")),
		City:        strings.TrimSpace(values.Get("city")),
		State:       strings.TrimSpace(values.Get("state")),
		PostalCode:  strings.TrimSpace(values.Get("postalCode")),
		Gender:      strings.TrimSpace(values.Get("gender")),
		SupportType: strings.TrimSpace(values.Get("supportType")),
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if strings.EqualFold(raw, unboundedLimit) {
			q.Limit = 0
			q.Unbounded = true
		} else {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 1 {
				return Query{}, &ValidationError{Message: MsgInvalidLimit}
			}
			q.Limit = min(limit, MaxLimit)
		}
	}

	if raw := strings.TrimSpace(values.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Query{}, &ValidationError{Message: MsgInvalidOffset}
		}
		q.Offset = offset
	}

	if raw := strings.TrimSpace(values.Get("distance")); raw != "" {
		distance, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
			return Query{}, &ValidationError{Message: MsgInvalidDistance}
		}
		q.DistanceKm = &distance
	}

	return q, nil
}
