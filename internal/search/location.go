package search

import (
	"regexp"
	"strings"
)

// LocationKind classifies a free-text location term.
type LocationKind int

const (
	// KindGeocodeAndRank is any term with a place-name component, or anything ambiguous.
	KindGeocodeAndRank LocationKind = iota
	// KindPureState is a term that is only a state or territory.
	KindPureState
	// KindPurePostal is a term that is only a postcode.
	KindPurePostal
)

// String returns the kind name.
func (k LocationKind) String() string {
	switch k {
	case KindPureState:
		return "pure-state"
	case KindPurePostal:
		return "pure-postal"
	default:
		return "geocode-and-rank"
	}
}

// StateCodes lists the eight Australian state and territory abbreviations.
var StateCodes = []string{"NSW", "VIC", "QLD", "SA", "WA", "TAS", "NT", "ACT"}

var stateNames = map[string]string{
	"newsouthwales":              "NSW",
	"victoria":                   "VIC",
	"queensland":                 "QLD",
	"southaustralia":             "SA",
	"westernaustralia":           "WA",
	"tasmania":                   "TAS",
	"northernterritory":          "NT",
	"australiancapitalterritory": "ACT",
}

var (
	stateCodePattern = regexp.MustCompile(`(?i)\b(?:NSW|VIC|QLD|SA|WA|TAS|NT|ACT)\b`)
	stateNamePattern = regexp.MustCompile(`(?i)\b(?:new\s+south\s+wales|victoria|queensland|south\s+australia|western\s+australia|tasmania|northern\s+territory|australian\s+capital\s+territory)\b`)
	postcodePattern  = regexp.MustCompile(`\b\d{4}\b`)
	// a full state name only counts when nothing but a postcode follows it
	stateNameTail = regexp.MustCompile(`^[\s,\d]*$`)
)

// ParsedLocation is the decomposition of a free-text location term.
// Empty strings mean "not found".
type ParsedLocation struct {
	StateCode     string
	PostalCode    string
	CityRemainder string
	Kind          LocationKind
}

// ParseLocation decomposes a trimmed location term into state, postcode and the remaining place name.
func ParseLocation(input string) ParsedLocation {
	var parsed ParsedLocation
	rest := input

	if loc := stateCodePattern.FindStringIndex(rest); loc != nil {
		parsed.StateCode = strings.ToUpper(rest[loc[0]:loc[1]])
		rest = cut(rest, loc)
	}
	if parsed.StateCode == "" {
		if loc := stateNameIndex(rest); loc != nil {
			parsed.StateCode = stateNames[normaliseKey(rest[loc[0]:loc[1]])]
			rest = cut(rest, loc)
		}
	}
	if parsed.StateCode == "" {
		if code, ok := stateKey(input); ok {
			parsed.StateCode = code
			rest = ""
		}
	}

	if loc := postcodePattern.FindStringIndex(rest); loc != nil {
		parsed.PostalCode = rest[loc[0]:loc[1]]
		rest = cut(rest, loc)
	}

	parsed.CityRemainder = strings.Join(strings.Fields(strings.ReplaceAll(rest, ",", " ")), " ")

	switch {
	case parsed.StateCode != "" && parsed.CityRemainder == "" && parsed.PostalCode == "":
		parsed.Kind = KindPureState
	case parsed.PostalCode != "" && parsed.CityRemainder == "" && parsed.StateCode == "":
		parsed.Kind = KindPurePostal
	default:
		parsed.Kind = KindGeocodeAndRank
	}
	return parsed
}

// stateNameIndex returns the last full state name in s that ends the place term,
// so names like "Victoria Park" stay intact.
func stateNameIndex(s string) []int {
	matches := stateNamePattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}
	loc := matches[len(matches)-1]
	if !stateNameTail.MatchString(s[loc[1]:]) {
		return nil
	}
	return loc
}

func stateKey(input string) (string, bool) {
	key := normaliseKey(input)
	if code, ok := stateNames[key]; ok {
		return code, true
	}
	for _, code := range StateCodes {
		if key == strings.ToLower(code) {
			return code, true
		}
	}
	return "", false
}

func normaliseKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// cut replaces s[loc[0]:loc[1]] with a single space.
func cut(s string, loc []int) string {
	return s[:loc[0]] + " " + s[loc[1]:]
}
