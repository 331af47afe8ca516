package search

import (
	"math"
	"strings"

	"contractor-directory-api/internal/models"
)

// Filter is a conjunctive description of which contractors match a query.
// Empty fields add no condition. Soft-deleted rows are always excluded by the store.
type Filter struct {
	StateContains      string
	PostalCodeContains string
	CityContains       string
	GenderEquals       string
	TitleContains      string
	BoundingBox        *BoundingBox
}

// BoundingBox is an inclusive latitude/longitude range.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// BuildFilter translates a query and its parsed location into a Filter.
// parsed must be non-nil whenever q.HasLocation() is true.
func BuildFilter(q Query, parsed *ParsedLocation) Filter {
	var f Filter

	if q.HasLocation() {
		if parsed != nil {
			switch parsed.Kind {
			case KindPureState:
				f.StateContains = parsed.StateCode
			case KindPurePostal:
				f.PostalCodeContains = parsed.PostalCode
			}
		}
	} else {
		f.CityContains = q.City
		f.StateContains = q.State
		f.PostalCodeContains = q.PostalCode
	}

	if q.Gender != "" && !strings.EqualFold(q.Gender, AllSentinel) {
		f.GenderEquals = q.Gender
	}
	if q.SupportType != "" && !strings.EqualFold(q.SupportType, AllSentinel) {
		f.TitleContains = q.SupportType
	}
	return f
}

// kmPerDegreeLatitude is the mean length of one degree of latitude.
const kmPerDegreeLatitude = 111.045

// NewBoundingBox returns the box enclosing every point within radiusKm of center.
// Near the poles the longitude span is widened to the full range.
func NewBoundingBox(center models.Coordinate, radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLatitude
	box := BoundingBox{
		MinLatitude:  math.Max(center.Latitude-dLat, -90),
		MaxLatitude:  math.Min(center.Latitude+dLat, 90),
		MinLongitude: -180,
		MaxLongitude: 180,
	}

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat > 1e-6 {
		dLon := radiusKm / (kmPerDegreeLatitude * cosLat)
		if dLon < 180 {
			box.MinLongitude = math.Max(center.Longitude-dLon, -180)
			box.MaxLongitude = math.Min(center.Longitude+dLon, 180)
		}
	}
	return box
}
