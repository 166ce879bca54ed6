package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vmunix/plexfind/internal/search"
	"github.com/vmunix/plexfind/pkg/filter"
)

var (
	validTypes = map[filter.MediaType]bool{
		filter.TypeMovie: true, filter.TypeShow: true, filter.TypeEpisode: true,
		filter.TypeArtist: true, filter.TypeAlbum: true, filter.TypeTrack: true,
	}
	validResolutions = map[filter.Resolution]bool{
		filter.ResolutionSD: true, filter.ResolutionHD: true, filter.Resolution4K: true,
	}
)

// addFilterFlags registers one flag per structured filter field.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.String("type", "", "Media type: movie, show, episode, artist, album, track")
	fs.String("section", "", "Library section ID (skips section lookup)")
	fs.String("title", "", "Title contains")
	fs.Int("year", 0, "Exact release year")
	fs.Int("min-year", 0, "Earliest release year")
	fs.Int("max-year", 0, "Latest release year")
	fs.Int("decade", 0, "Decade start year, e.g. 1990")
	fs.String("genre", "", "Genre")
	fs.String("content-rating", "", "Content rating, e.g. PG-13")
	fs.Float64("min-rating", 0, "Minimum rating (0-10)")
	fs.Float64("max-rating", 0, "Maximum rating (0-10)")
	fs.String("director", "", "Director")
	fs.String("actor", "", "Actor")
	fs.String("studio", "", "Studio")
	fs.Bool("unwatched", false, "Only unwatched items")
	fs.Bool("watched", false, "Only watched items")
	fs.Bool("in-progress", false, "Only partially watched items")
	fs.Int("min-duration", 0, "Minimum runtime in minutes")
	fs.Int("max-duration", 0, "Maximum runtime in minutes")
	fs.Int("added-within", 0, "Added within the last N days")
	fs.String("resolution", "", "Resolution: sd, hd, 4k")
	fs.String("sort", "", "Sort field: titleSort, year, rating, addedAt, lastViewedAt, duration, random")
	fs.String("order", "", "Sort order: asc, desc")
	fs.Int("limit", 0, "Maximum number of results")
}

// filterFromFlags builds a structured filter from the flags the user set.
// It returns nil when no filter flag was given.
func filterFromFlags(fs *pflag.FlagSet) (*filter.Filter, error) {
	var f filter.Filter
	set := false

	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
			set = true
		}
	}
	num := func(name string, dst **int) {
		if fs.Changed(name) {
			v, _ := fs.GetInt(name)
			*dst = &v
			set = true
		}
	}
	float := func(name string, dst **float64) {
		if fs.Changed(name) {
			v, _ := fs.GetFloat64(name)
			*dst = &v
			set = true
		}
	}
	boolean := func(name string, dst *bool) {
		if fs.Changed(name) {
			*dst, _ = fs.GetBool(name)
			set = true
		}
	}

	var mediaType, resolution, sort, order string
	str("type", &mediaType)
	str("section", &f.SectionID)
	str("title", &f.Title)
	num("year", &f.Year)
	num("min-year", &f.MinYear)
	num("max-year", &f.MaxYear)
	num("decade", &f.Decade)
	str("genre", &f.Genre)
	str("content-rating", &f.ContentRating)
	float("min-rating", &f.MinRating)
	float("max-rating", &f.MaxRating)
	str("director", &f.Director)
	str("actor", &f.Actor)
	str("studio", &f.Studio)
	boolean("unwatched", &f.Unwatched)
	boolean("watched", &f.Watched)
	boolean("in-progress", &f.InProgress)
	num("min-duration", &f.MinDurationMinutes)
	num("max-duration", &f.MaxDurationMinutes)
	num("added-within", &f.AddedWithinDays)
	str("resolution", &resolution)
	str("sort", &sort)
	str("order", &order)
	num("limit", &f.Limit)

	if !set {
		return nil, nil
	}

	f.Type = filter.MediaType(strings.ToLower(mediaType))
	if f.Type != "" && !validTypes[f.Type] {
		return nil, fmt.Errorf("--type: unknown media type %q", mediaType)
	}
	f.Resolution = filter.Resolution(strings.ToLower(resolution))
	if f.Resolution != "" && !validResolutions[f.Resolution] {
		return nil, fmt.Errorf("--resolution: must be sd, hd or 4k, got %q", resolution)
	}
	f.Sort = filter.SortField(sort)
	f.SortOrder = filter.SortOrder(strings.ToLower(order))
	if f.SortOrder != "" && f.SortOrder != filter.OrderAsc && f.SortOrder != filter.OrderDesc {
		return nil, fmt.Errorf("--order: must be asc or desc, got %q", order)
	}
	if f.Limit != nil && *f.Limit <= 0 {
		return nil, fmt.Errorf("--limit: must be positive, got %d", *f.Limit)
	}
	return &f, nil
}

// buildRequest combines positional query text with structured flags.
func buildRequest(fs *pflag.FlagSet, args []string) (search.Request, error) {
	f, err := filterFromFlags(fs)
	if err != nil {
		return search.Request{}, err
	}
	req := search.Request{Text: strings.TrimSpace(strings.Join(args, " ")), Filter: f}
	if req.Text == "" && req.Filter == nil {
		return search.Request{}, errors.New("provide query text or at least one filter flag")
	}
	return req, nil
}
