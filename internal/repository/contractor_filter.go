package repository

import (
	"strings"

	"contractor-directory-api/internal/search"

	sq "github.com/Masterminds/squirrel"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

// filterCondition renders a search filter as a single AND condition.
// The soft-delete guard is always the first term.
func filterCondition(f search.Filter) sq.And {
	cond := sq.And{sq.Eq{"deleted_at": nil}}

	if f.StateContains != "" {
		cond = append(cond, sq.ILike{"state": containsPattern(f.StateContains)})
	}
	if f.PostalCodeContains != "" {
		cond = append(cond, sq.ILike{"postal_code": containsPattern(f.PostalCodeContains)})
	}
	if f.CityContains != "" {
		cond = append(cond, sq.ILike{"city": containsPattern(f.CityContains)})
	}
	if f.GenderEquals != "" {
		cond = append(cond, sq.Expr("LOWER(gender) = LOWER(?)", f.GenderEquals))
	}
	if f.TitleContains != "" {
		cond = append(cond, sq.ILike{"title": containsPattern(f.TitleContains)})
	}
	if box := f.BoundingBox; box != nil {
		cond = append(cond,
			sq.Expr("latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude),
			sq.Expr("longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude),
		)
	}
	return cond
}
