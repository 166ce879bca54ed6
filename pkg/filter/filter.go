// Package filter turns free-text library queries into canonical search filters.
package filter

// MediaType is the kind of library item a search targets.
type MediaType string

const (
	TypeMovie   MediaType = "movie"
	TypeShow    MediaType = "show"
	TypeEpisode MediaType = "episode"
	TypeArtist  MediaType = "artist"
	TypeAlbum   MediaType = "album"
	TypeTrack   MediaType = "track"
)

// Resolution is a coarse video resolution bucket.
type Resolution string

const (
	ResolutionSD Resolution = "sd"
	ResolutionHD Resolution = "hd"
	Resolution4K Resolution = "4k"
)

// SortField names the field results are ordered by.
type SortField string

const (
	SortTitle        SortField = "titleSort"
	SortYear         SortField = "year"
	SortRating       SortField = "rating"
	SortAddedAt      SortField = "addedAt"
	SortLastViewedAt SortField = "lastViewedAt"
	SortDuration     SortField = "duration"
	SortRandom       SortField = "random"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter is a flat set of independently optional search constraints.
//
// Nil pointers, empty strings and false booleans mean "unset". No field clears
// another: Watched and Unwatched may both be true and are compiled as given.
type Filter struct {
	Type          MediaType `json:"type,omitempty"`
	SectionID     string    `json:"sectionId,omitempty"`
	Title         string    `json:"title,omitempty"`
	Year          *int      `json:"year,omitempty"`
	MinYear       *int      `json:"minYear,omitempty"`
	MaxYear       *int      `json:"maxYear,omitempty"`
	Decade        *int      `json:"decade,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	ContentRating string    `json:"contentRating,omitempty"`
	MinRating     *float64  `json:"minRating,omitempty"`
	MaxRating     *float64  `json:"maxRating,omitempty"`
	Director      string    `json:"director,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	Studio        string    `json:"studio,omitempty"`

	Unwatched  bool `json:"unwatched,omitempty"`
	Watched    bool `json:"watched,omitempty"`
	InProgress bool `json:"inProgress,omitempty"`

	MinDurationMinutes *int       `json:"minDuration,omitempty"`
	MaxDurationMinutes *int       `json:"maxDuration,omitempty"`
	AddedWithinDays    *int       `json:"addedWithinDays,omitempty"`
	Resolution         Resolution `json:"resolution,omitempty"`
	Sort               SortField  `json:"sort,omitempty"`
	SortOrder          SortOrder  `json:"sortOrder,omitempty"`
	Limit              *int       `json:"limit,omitempty"`
}

// IsEmpty reports whether no field of f is set.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Ptr returns a pointer to v. It keeps filter literals short.
func Ptr[T any](v T) *T {
	return &v
}
