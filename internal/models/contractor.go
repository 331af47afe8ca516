package models

import (
	"time"

	"github.com/google/uuid"
)

// Contractor is the read-only projection of a support worker profile served by the directory.
type Contractor struct {
	ID                uuid.UUID  `json:"id"`
	ExternalCRMID     *string    `json:"externalCrmId,omitempty"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	Gender            string     `json:"gender"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	PostalCode        string     `json:"postalCode"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	Title             string     `json:"title"`
	YearsOfExperience *int       `json:"yearsOfExperience"`
	Qualifications    string     `json:"qualifications"`
	Languages         []string   `json:"languages"`
	HasVehicle        bool       `json:"hasVehicle"`
	About             string     `json:"about"`
	FunFact           string     `json:"funFact"`
	Hobbies           string     `json:"hobbies"`
	WhatMakesMeUnique string     `json:"whatMakesMeUnique"`
	ProfileImage      string     `json:"profileImage"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	LastSyncedAt      *time.Time `json:"lastSyncedAt"`
}

// Coordinate returns the contractor's position, or nil when either component is missing.
func (c Contractor) Coordinate() *Coordinate {
	if c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &Coordinate{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

// RankedContractor is a contractor as returned by search, with the distance from the search point when one was resolved.
type RankedContractor struct {
	Contractor
	Distance *float64 `json:"distance,omitempty"`
}
