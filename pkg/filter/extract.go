package filter

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var (
	decadeRegex   = regexp.MustCompile(`(\d{2})s\b`)
	fromYearRegex = regexp.MustCompile(`\bfrom\s+(\d{4})\b`)
	bareYearRegex = regexp.MustCompile(`\b(19\d{2}|20[0-2]\d)\b`)
	beforeRegex   = regexp.MustCompile(`\bbefore\s+(\d{4})\b`)
	afterRegex    = regexp.MustCompile(`\bafter\s+(\d{4})\b`)

	minRatingRegex = regexp.MustCompile(`\b(?:rated|rating)\s+(?:above|over|greater than)\s+(\d+(?:\.\d+)?)`)
	maxRatingRegex = regexp.MustCompile(`\b(?:rated|rating)\s+(?:below|under|less than)\s+(\d+(?:\.\d+)?)`)

	underDurationRegex = regexp.MustCompile(`\bunder\s+(\d+)\s*(min|hour)`)
	overDurationRegex  = regexp.MustCompile(`\bover\s+(\d+)\s*(min|hour)`)

	recencyRegex = regexp.MustCompile(`\b(?:added|new)\s+(?:in\s+the\s+)?(?:(?:last|past)\s+)?(?:(\d+)\s*)?(day|week|month)`)
	// Whole word only: "newest" is a sort phrase and must not also set recency.
	bareNewRegex = regexp.MustCompile(`\bnew\b`)
)

// contentRatingRegexes holds one whole-token pattern per content rating, in
// contentRatings order. A hyphen is part of a token, so "pg" does not match
// inside "pg-13" and "g" does not match inside "tv-g".
var contentRatingRegexes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(contentRatings))
	for i, r := range contentRatings {
		res[i] = regexp.MustCompile(`(?:^|[^a-z0-9-])` + regexp.QuoteMeta(strings.ToLower(r)) + `(?:$|[^a-z0-9-])`)
	}
	return res
}()

// spacedRatings rewrites "pg 13" style spellings to their hyphenated form.
// Longer spellings come first so "tv y7" is not cut short by "tv y".
var spacedRatings = strings.NewReplacer(
	"pg 13", "pg-13",
	"nc 17", "nc-17",
	"tv y7", "tv-y7",
	"tv pg", "tv-pg",
	"tv 14", "tv-14",
	"tv ma", "tv-ma",
	"tv y", "tv-y",
	"tv g", "tv-g",
)

const (
	defaultShortMinutes = 90
	defaultLongMinutes  = 120
	defaultRecentDays   = 7
)

var recencyUnitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
}

// Extract scans free text for search signals and returns the partial filter
// they describe. Fields with no matching signal stay unset; defaults are left
// to Resolve. Extract never fails.
func Extract(text string) Filter {
	s := cases.Fold().String(text)

	var f Filter
	f.Type = extractMediaType(s)
	extractWatchStatus(s, &f)
	extractYears(s, &f)
	extractRating(s, &f)
	f.Genre = extractGenre(s)
	extractDuration(s, &f)
	f.Resolution = extractResolution(s)
	f.AddedWithinDays = extractRecency(s)
	f.ContentRating = extractContentRating(s)
	if intent, ok := firstRule(s, sortRules); ok {
		f.Sort = intent.field
		f.SortOrder = intent.order
	}
	return f
}

func extractMediaType(s string) MediaType {
	t, _ := firstRule(s, mediaTypeRules)
	return t
}

func extractWatchStatus(s string, f *Filter) {
	switch {
	case containsAny(s, "unwatched", "not watched", "haven't watched"):
		f.Unwatched = true
	case strings.Contains(s, "watched"):
		f.Watched = true
	}
	if containsAny(s, "in progress", "continue", "started") {
		f.InProgress = true
	}
}

// extractYears applies the year rules in precedence order. A decade or a
// "from YYYY" phrase suppresses the bare year; "before" and "after" apply
// regardless.
func extractYears(s string, f *Filter) {
	matched := false
	if m := decadeRegex.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		// Kept as-is pending product review: "90s" yields 2800, not 1990.
		decade := 1900 + n*10
		if n < 30 {
			decade = 2000 + n*10
		}
		f.Decade = &decade
		matched = true
	}
	if y, ok := captureInt(fromYearRegex, s); ok {
		f.MinYear = &y
		matched = true
	}
	if !matched {
		if y, ok := captureInt(bareYearRegex, s); ok {
			f.Year = &y
		}
	}
	if y, ok := captureInt(beforeRegex, s); ok {
		f.MaxYear = Ptr(y - 1)
	}
	if y, ok := captureInt(afterRegex, s); ok {
		f.MinYear = Ptr(y + 1)
	}
}

func extractRating(s string, f *Filter) {
	if m := minRatingRegex.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinRating = &v
		}
	}
	if m := maxRatingRegex.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MaxRating = &v
		}
	}
}

func extractGenre(s string) string {
	for _, g := range genres {
		if strings.Contains(s, g) {
			if alias, ok := genreAliases[g]; ok {
				return alias
			}
			return g
		}
	}
	return ""
}

func extractDuration(s string, f *Filter) {
	if m := underDurationRegex.FindStringSubmatch(s); m != nil {
		f.MaxDurationMinutes = Ptr(durationMinutes(m[1], m[2]))
	} else if strings.Contains(s, "short") {
		f.MaxDurationMinutes = Ptr(defaultShortMinutes)
	}
	if m := overDurationRegex.FindStringSubmatch(s); m != nil {
		f.MinDurationMinutes = Ptr(durationMinutes(m[1], m[2]))
	} else if strings.Contains(s, "long") {
		f.MinDurationMinutes = Ptr(defaultLongMinutes)
	}
}

// durationMinutes returns the bound in minutes, so "under 2 hours" is 120.
// Durations are compared in minutes downstream; a raw hour count would
// silently mean minutes.
func durationMinutes(count, unit string) int {
	n, _ := strconv.Atoi(count)
	if unit == "hour" {
		return n * 60
	}
	return n
}

func extractResolution(s string) Resolution {
	switch {
	case containsAny(s, "4k", "uhd"):
		return Resolution4K
	case strings.Contains(s, "hd"):
		return ResolutionHD
	default:
		return ""
	}
}

func extractRecency(s string) *int {
	if m := recencyRegex.FindStringSubmatch(s); m != nil {
		count := 1
		if m[1] != "" {
			count, _ = strconv.Atoi(m[1])
		}
		return Ptr(count * recencyUnitDays[m[2]])
	}
	if strings.Contains(s, "recently added") || bareNewRegex.MatchString(s) {
		return Ptr(defaultRecentDays)
	}
	return nil
}

func extractContentRating(s string) string {
	s = spacedRatings.Replace(s)
	for i, re := range contentRatingRegexes {
		if re.MatchString(s) {
			return contentRatings[i]
		}
	}
	return ""
}

func firstRule[T any](s string, rules []keywordRule[T]) (T, bool) {
	for _, r := range rules {
		if containsAny(s, r.phrases...) {
			return r.value, true
		}
	}
	var zero T
	return zero, false
}

func captureInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
