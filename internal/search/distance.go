package search

import (
	"math"
	"sort"

	"contractor-directory-api/internal/models"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b models.Coordinate) float64 {
	lat1 := degreesToRadians(a.Latitude)
	lat2 := degreesToRadians(b.Latitude)
	deltaLat := degreesToRadians(b.Latitude - a.Latitude)
	deltaLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// RankByDistance orders contractors nearest-first from origin.
//
// With a nil origin the rows pass through in their original order without distances.
// Otherwise rows lacking coordinates are dropped, the distance (rounded to 0.1 km) is attached,
// rows farther than radiusKm are dropped when a radius is given, and the rest are sorted
// ascending by distance. Ties keep their original order.
func RankByDistance(rows []models.Contractor, origin *models.Coordinate, radiusKm *float64) []models.RankedContractor {
	if origin == nil {
		ranked := make([]models.RankedContractor, len(rows))
		for i, row := range rows {
			ranked[i] = models.RankedContractor{Contractor: row}
		}
		return ranked
	}

	ranked := make([]models.RankedContractor, 0, len(rows))
	for _, row := range rows {
		point := row.Coordinate()
		if point == nil {
			continue
		}
		d := roundToTenth(Haversine(*origin, *point))
		if radiusKm != nil && d > *radiusKm {
			continue
		}
		ranked = append(ranked, models.RankedContractor{Contractor: row, Distance: &d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})
	return ranked
}
