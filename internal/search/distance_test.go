package search

import (
	"testing"

	"contractor-directory-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sydneyCBD   = models.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	parramatta  = models.Coordinate{Latitude: -33.8150, Longitude: 151.0011}
	newcastle   = models.Coordinate{Latitude: -32.9283, Longitude: 151.7817}
	melbourne   = models.Coordinate{Latitude: -37.8136, Longitude: 144.9631}
	blacktown   = models.Coordinate{Latitude: -33.7710, Longitude: 150.9060}
	perth       = models.Coordinate{Latitude: -31.9523, Longitude: 115.8613}
	northPole   = models.Coordinate{Latitude: 90, Longitude: 0}
	southOrigin = models.Coordinate{Latitude: -90, Longitude: 0}
)

func contractorAt(name string, c *models.Coordinate) models.Contractor {
	row := models.Contractor{ID: uuid.New(), FirstName: name}
	if c != nil {
		lat, lon := c.Latitude, c.Longitude
		row.Latitude = &lat
		row.Longitude = &lon
	}
	return row
}

func names(ranked []models.RankedContractor) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.FirstName
	}
	return out
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 713.0, Haversine(sydneyCBD, melbourne), 2.0)
	assert.InDelta(t, 20015.1, Haversine(northPole, southOrigin), 0.5)
}

func TestHaversine_Symmetric(t *testing.T) {
	points := []models.Coordinate{sydneyCBD, parramatta, newcastle, melbourne, perth, northPole}
	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
		}
	}
}

func TestHaversine_SamePointIsZero(t *testing.T) {
	for _, p := range []models.Coordinate{sydneyCBD, perth, northPole} {
		assert.Equal(t, 0.0, Haversine(p, p))
	}
}

func TestRankByDistance_NoOriginPassesThrough(t *testing.T) {
	rows := []models.Contractor{
		contractorAt("melbourne", &melbourne),
		contractorAt("nowhere", nil),
		contractorAt("parramatta", &parramatta),
	}

	ranked := RankByDistance(rows, nil, nil)

	assert.Equal(t, []string{"melbourne", "nowhere", "parramatta"}, names(ranked))
	for _, r := range ranked {
		assert.Nil(t, r.Distance)
	}
}

func TestRankByDistance_SortsAndDropsUnplaced(t *testing.T) {
	rows := []models.Contractor{
		contractorAt("melbourne", &melbourne),
		contractorAt("nowhere", nil),
		contractorAt("newcastle", &newcastle),
		contractorAt("blacktown", &blacktown),
		contractorAt("sydney", &sydneyCBD),
	}
	latOnly := contractorAt("lat-only", &perth)
	latOnly.Longitude = nil
	rows = append(rows, latOnly)

	ranked := RankByDistance(rows, &parramatta, nil)

	assert.Equal(t, []string{"blacktown", "sydney", "newcastle", "melbourne"}, names(ranked))
	for i := 1; i < len(ranked); i++ {
		assert.Less(t, *ranked[i-1].Distance, *ranked[i].Distance)
	}
}

func TestRankByDistance_RoundsToOneDecimal(t *testing.T) {
	ranked := RankByDistance([]models.Contractor{contractorAt("sydney", &sydneyCBD)}, &parramatta, nil)
	require.Len(t, ranked, 1)

	d := *ranked[0].Distance
	assert.InDelta(t, d, float64(int64(d*10+0.5))/10, 1e-9)
	assert.InDelta(t, 20.0, d, 1.5)
}

func TestRankByDistance_Radius(t *testing.T) {
	rows := []models.Contractor{
		contractorAt("melbourne", &melbourne),
		contractorAt("newcastle", &newcastle),
		contractorAt("parramatta", &parramatta),
		contractorAt("blacktown", &blacktown),
	}
	radius := 50.0

	ranked := RankByDistance(rows, &sydneyCBD, &radius)

	assert.Equal(t, []string{"parramatta", "blacktown"}, names(ranked))
	for _, r := range ranked {
		assert.LessOrEqual(t, *r.Distance, 50.0)
	}
}

func TestRankByDistance_TiesKeepFetchOrder(t *testing.T) {
	rows := []models.Contractor{
		contractorAt("first", &parramatta),
		contractorAt("second", &parramatta),
		contractorAt("third", &parramatta),
	}

	ranked := RankByDistance(rows, &sydneyCBD, nil)

	assert.Equal(t, []string{"first", "second", "third"}, names(ranked))
}

func TestRankByDistance_Idempotent(t *testing.T) {
	rows := []models.Contractor{
		contractorAt("melbourne", &melbourne),
		contractorAt("newcastle", &newcastle),
		contractorAt("parramatta", &parramatta),
		contractorAt("twin", &parramatta),
	}

	assert.Equal(t, RankByDistance(rows, &sydneyCBD, nil), RankByDistance(rows, &sydneyCBD, nil))
}
