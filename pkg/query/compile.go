// Package query compiles canonical search filters into Plex section search parameters.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/plexfind/pkg/filter"
)

// Section is a library section as reported by the media server.
type Section struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // movie, show, artist, photo
	Title string `json:"title,omitempty"`
}

// Window is the pagination window of a compiled query.
type Window struct {
	Start int `json:"start"`
	Size  int `json:"size"`
}

// Compiled is a backend-ready section search.
type Compiled struct {
	SectionID string `json:"sectionId"`
	Params    Params `json:"parameters"`
	Sort      string `json:"sort"`
	Window    Window `json:"window"`
}

// Values renders the parameters and pagination window as a URL query string.
func (c *Compiled) Values() string {
	window := url.Values{}
	window.Set("X-Plex-Container-Start", strconv.Itoa(c.Window.Start))
	window.Set("X-Plex-Container-Size", strconv.Itoa(c.Window.Size))
	if c.Params.Len() == 0 {
		return window.Encode()
	}
	return c.Params.Encode() + "&" + window.Encode()
}

const (
	minYearBound = 1800

	msPerMinute = int64(60000)
	msPerDay    = int64(86400000)
)

// Compile translates a resolved filter into a section search. When the filter
// names no section, the first section of the matching media type family is
// used; ErrNoSection is returned if there is none. All other input compiles,
// including contradictory or out-of-range values.
func Compile(f filter.Filter, sections []Section, now time.Time) (*Compiled, error) {
	sectionID := f.SectionID
	if sectionID == "" {
		sec, ok := FindSection(sections, f.Type)
		if !ok {
			return nil, ErrNoSection
		}
		sectionID = sec.ID
	}

	q := &Compiled{SectionID: sectionID}
	p := &q.Params

	p.Set("type", TypeCode(f.Type))

	if f.Title != "" {
		p.Set("title", f.Title)
	}

	switch {
	case f.Decade != nil:
		p.Set("year>>", *f.Decade)
		p.Set("year<<", *f.Decade+9)
	case f.MinYear != nil || f.MaxYear != nil:
		lo, hi := minYearBound, now.Year()
		if f.MinYear != nil {
			lo = *f.MinYear
		}
		if f.MaxYear != nil {
			hi = *f.MaxYear
		}
		p.Set("year>>", lo)
		p.Set("year<<", hi)
	case f.Year != nil:
		p.Set("year", *f.Year)
	}

	if f.Genre != "" {
		p.Set("genre", f.Genre)
	}
	if f.ContentRating != "" {
		p.Set("contentRating", f.ContentRating)
	}
	if f.MinRating != nil {
		p.Set("rating>>", *f.MinRating)
	}
	if f.MaxRating != nil {
		p.Set("rating<<", *f.MaxRating)
	}
	if f.Director != "" {
		p.Set("director", f.Director)
	}
	if f.Actor != "" {
		p.Set("actor", f.Actor)
	}
	if f.Studio != "" {
		p.Set("studio", f.Studio)
	}

	if f.Unwatched {
		p.Set("unwatched", 1)
	}
	if f.Watched {
		p.Set("viewCount>>", 0)
	}
	if f.InProgress {
		p.Set("inProgress", 1)
	}

	if f.MinDurationMinutes != nil {
		p.Set("duration>>", int64(*f.MinDurationMinutes)*msPerMinute)
	}
	if f.MaxDurationMinutes != nil {
		p.Set("duration<<", int64(*f.MaxDurationMinutes)*msPerMinute)
	}

	if f.AddedWithinDays != nil {
		cutoff := now.UnixMilli() - int64(*f.AddedWithinDays)*msPerDay
		p.Set("addedAt>>", floorDiv(cutoff, 1000))
	}

	switch f.Resolution {
	case filter.Resolution4K:
		p.Set("videoResolution", "4k")
	case filter.ResolutionHD:
		p.Set("videoResolution", "1080")
	}

	q.Sort = SortString(f.Sort, f.SortOrder)
	p.Set("sort", q.Sort)

	limit := filter.DefaultLimit
	if f.Limit != nil {
		limit = *f.Limit
	}
	q.Window = Window{Start: 0, Size: limit}

	return q, nil
}

// FindSection returns the first section whose type belongs to t's family.
func FindSection(sections []Section, t filter.MediaType) (Section, bool) {
	family := typeFamily(t)
	for _, s := range sections {
		if family[strings.ToLower(s.Type)] {
			return s, true
		}
	}
	return Section{}, false
}

var (
	movieFamily  = map[string]bool{"movie": true}
	showFamily   = map[string]bool{"show": true}
	artistFamily = map[string]bool{"artist": true, "music": true}
)

func typeFamily(t filter.MediaType) map[string]bool {
	switch t {
	case filter.TypeShow, filter.TypeEpisode:
		return showFamily
	case filter.TypeArtist, filter.TypeAlbum, filter.TypeTrack:
		return artistFamily
	default:
		return movieFamily
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
