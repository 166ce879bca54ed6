package query

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/plexfind/pkg/filter"
)

// typeCodes maps media type names to Plex metadata type codes.
var typeCodes = map[string]int{
	"movie":       1,
	"show":        2,
	"season":      3,
	"episode":     4,
	"trailer":     5,
	"comic":       6,
	"person":      7,
	"artist":      8,
	"album":       9,
	"track":       10,
	"photo":       11,
	"clip":        12,
	"photo_album": 13,
}

// TypeCode returns the Plex type code for t. Unknown types map to movie.
func TypeCode(t filter.MediaType) int {
	if code, ok := typeCodes[string(t)]; ok {
		return code
	}
	return typeCodes["movie"]
}

// sortFields is the sort allow-list. The first entry is the fallback.
var sortFields = []filter.SortField{
	filter.SortTitle,
	filter.SortYear,
	filter.SortRating,
	filter.SortAddedAt,
	filter.SortLastViewedAt,
	filter.SortDuration,
	filter.SortRandom,
}

// IsSortField reports whether field is on the sort allow-list.
func IsSortField(field filter.SortField) bool {
	for _, s := range sortFields {
		if s == field {
			return true
		}
	}
	return false
}

// SortString renders the sort parameter as "<field>:<direction>". Fields not
// on the allow-list fall back to titleSort. The direction is always present,
// including for random.
func SortString(field filter.SortField, order filter.SortOrder) string {
	if !IsSortField(field) {
		field = filter.SortTitle
	}
	dir := filter.OrderAsc
	if order == filter.OrderDesc {
		dir = filter.OrderDesc
	}
	return string(field) + ":" + string(dir)
}

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.8

// SuggestSort returns the allow-listed sort field closest to name, if any is
// close enough to be a likely typo.
func SuggestSort(name string) (filter.SortField, bool) {
	var best filter.SortField
	var bestScore float32
	for _, s := range sortFields {
		score := edlib.JaroWinklerSimilarity(strings.ToLower(name), strings.ToLower(string(s)))
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
