package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexfind/pkg/filter"
	"github.com/vmunix/plexfind/pkg/query"
)

var (
	testNow      = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	testSections = []query.Section{
		{ID: "3", Type: "artist", Title: "Music"},
		{ID: "1", Type: "movie", Title: "Movies"},
		{ID: "7", Type: "movie", Title: "4K Movies"},
		{ID: "2", Type: "show", Title: "TV Shows"},
	}
)

func compileText(t *testing.T, text string) *query.Compiled {
	t.Helper()
	f := filter.Resolve(filter.Extract(text), filter.TextDefaults)
	q, err := query.Compile(f, testSections, testNow)
	require.NoError(t, err)
	return q
}

func compileResolved(t *testing.T, f filter.Filter) *query.Compiled {
	t.Helper()
	q, err := query.Compile(filter.Resolve(f, filter.StructuredDefaults), testSections, testNow)
	require.NoError(t, err)
	return q
}

func param(t *testing.T, q *query.Compiled, key string) any {
	t.Helper()
	v, ok := q.Params.Get(key)
	require.True(t, ok, "missing parameter %q", key)
	return v
}

func TestCompile_TopRatedComedyShows(t *testing.T) {
	q := compileText(t, "top rated comedy shows")

	assert.Equal(t, "2", q.SectionID)
	assert.Equal(t, 2, param(t, q, "type"))
	assert.Equal(t, "comedy", param(t, q, "genre"))
	assert.Equal(t, "rating:desc", param(t, q, "sort"))
	assert.Equal(t, "rating:desc", q.Sort)
}

func TestCompile_MoviesRatedAbove(t *testing.T) {
	q := compileText(t, "movies rated above 7")

	assert.Equal(t, "1", q.SectionID)
	assert.Equal(t, 1, param(t, q, "type"))
	assert.Equal(t, 7.0, param(t, q, "rating>>"))
	assert.Equal(t, "titleSort:asc", q.Sort)
	assert.Equal(t, query.Window{Start: 0, Size: 25}, q.Window)
}

func TestCompile_StructuredDuration(t *testing.T) {
	q := compileResolved(t, filter.Filter{
		Type:               filter.TypeMovie,
		MinDurationMinutes: filter.Ptr(90),
		MaxDurationMinutes: filter.Ptr(150),
	})

	assert.Equal(t, int64(5400000), param(t, q, "duration>>"))
	assert.Equal(t, int64(9000000), param(t, q, "duration<<"))
}

func TestCompile_DurationIsExactMillis(t *testing.T) {
	for _, m := range []int{0, 1, 59, 90, 1440, 100000} {
		q := compileResolved(t, filter.Filter{MinDurationMinutes: filter.Ptr(m)})
		assert.Equal(t, int64(m)*60000, param(t, q, "duration>>"), "minutes=%d", m)
	}
}

func TestCompile_NoMatchingSection(t *testing.T) {
	f := filter.Resolve(filter.Filter{Type: filter.TypeMovie}, filter.StructuredDefaults)
	q, err := query.Compile(f, []query.Section{{ID: "2", Type: "show"}}, testNow)

	require.ErrorIs(t, err, query.ErrNoSection)
	assert.EqualError(t, err, "could not determine library section for search")
	assert.Nil(t, q)
}

func TestCompile_ExplicitSectionSkipsLookup(t *testing.T) {
	f := filter.Resolve(filter.Filter{Type: filter.TypeMovie, SectionID: "42"}, filter.StructuredDefaults)
	q, err := query.Compile(f, nil, testNow)

	require.NoError(t, err)
	assert.Equal(t, "42", q.SectionID)
}

func TestCompile_SectionFamilies(t *testing.T) {
	tests := []struct {
		typ  filter.MediaType
		want string
	}{
		{filter.TypeMovie, "1"},
		{filter.TypeShow, "2"},
		{filter.TypeEpisode, "2"},
		{filter.TypeArtist, "3"},
		{filter.TypeAlbum, "3"},
		{filter.TypeTrack, "3"},
		{"clip", "1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			q := compileResolved(t, filter.Filter{Type: tt.typ})
			assert.Equal(t, tt.want, q.SectionID)
		})
	}
}

func TestCompile_MusicSectionMatchesArtistFamily(t *testing.T) {
	sections := []query.Section{{ID: "9", Type: "Music"}}
	q, err := query.Compile(filter.Filter{Type: filter.TypeAlbum}, sections, testNow)

	require.NoError(t, err)
	assert.Equal(t, "9", q.SectionID)
}

func TestCompile_TypeCodes(t *testing.T) {
	tests := []struct {
		typ  filter.MediaType
		want int
	}{
		{filter.TypeMovie, 1},
		{filter.TypeShow, 2},
		{"season", 3},
		{filter.TypeEpisode, 4},
		{"trailer", 5},
		{"comic", 6},
		{"person", 7},
		{filter.TypeArtist, 8},
		{filter.TypeAlbum, 9},
		{filter.TypeTrack, 10},
		{"photo", 11},
		{"clip", 12},
		{"photo_album", 13},
		{"hologram", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, query.TypeCode(tt.typ))
		})
	}
}

func TestCompile_Decade(t *testing.T) {
	q := compileResolved(t, filter.Filter{
		Decade:  filter.Ptr(1980),
		MinYear: filter.Ptr(1970),
		Year:    filter.Ptr(1985),
	})

	assert.Equal(t, 1980, param(t, q, "year>>"))
	assert.Equal(t, 1989, param(t, q, "year<<"))
	assert.False(t, q.Params.Has("year"))
}

func TestCompile_YearRange(t *testing.T) {
	tests := []struct {
		name   string
		f      filter.Filter
		lo, hi int
	}{
		{"both", filter.Filter{MinYear: filter.Ptr(1990), MaxYear: filter.Ptr(1999)}, 1990, 1999},
		{"min only", filter.Filter{MinYear: filter.Ptr(2010)}, 2010, 2024},
		{"max only", filter.Filter{MaxYear: filter.Ptr(1950)}, 1800, 1950},
		{"range beats exact year", filter.Filter{MaxYear: filter.Ptr(1950), Year: filter.Ptr(1940)}, 1800, 1950},
		{"inverted range passes through", filter.Filter{MinYear: filter.Ptr(2000), MaxYear: filter.Ptr(1990)}, 2000, 1990},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := compileResolved(t, tt.f)
			assert.Equal(t, tt.lo, param(t, q, "year>>"))
			assert.Equal(t, tt.hi, param(t, q, "year<<"))
			assert.False(t, q.Params.Has("year"))
		})
	}
}

func TestCompile_ExactYear(t *testing.T) {
	q := compileResolved(t, filter.Filter{Year: filter.Ptr(1999)})

	assert.Equal(t, 1999, param(t, q, "year"))
	assert.False(t, q.Params.Has("year>>"))
	assert.False(t, q.Params.Has("year<<"))
}

func TestCompile_BeforeAndAfterText(t *testing.T) {
	for _, y := range []int{1950, 1999, 2000, 2023} {
		before := compileText(t, "movies before "+itoa(y))
		assert.Equal(t, y-1, param(t, before, "year<<"), "before %d", y)

		after := compileText(t, "movies after "+itoa(y))
		assert.Equal(t, y+1, param(t, after, "year>>"), "after %d", y)
	}
}

func TestCompile_RatingBounds(t *testing.T) {
	q := compileResolved(t, filter.Filter{MinRating: filter.Ptr(6.5), MaxRating: filter.Ptr(11.0)})

	assert.Equal(t, 6.5, param(t, q, "rating>>"))
	assert.Equal(t, 11.0, param(t, q, "rating<<"))
}

func TestCompile_WatchStatusIsNotExclusive(t *testing.T) {
	q := compileResolved(t, filter.Filter{Unwatched: true, Watched: true, InProgress: true})

	assert.Equal(t, 1, param(t, q, "unwatched"))
	assert.Equal(t, 0, param(t, q, "viewCount>>"))
	assert.Equal(t, 1, param(t, q, "inProgress"))
}

func TestCompile_AddedWithinDays(t *testing.T) {
	q := compileResolved(t, filter.Filter{AddedWithinDays: filter.Ptr(7)})

	want := testNow.Unix() - 7*86400
	assert.Equal(t, want, param(t, q, "addedAt>>"))
}

func TestCompile_AddedWithinDaysFloorsMillis(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 999_000_000, time.UTC)
	f := filter.Resolve(filter.Filter{AddedWithinDays: filter.Ptr(1)}, filter.TextDefaults)
	q, err := query.Compile(f, testSections, now)
	require.NoError(t, err)

	v, _ := q.Params.Get("addedAt>>")
	assert.Equal(t, now.Unix()-86400, v)
}

func TestCompile_Resolution(t *testing.T) {
	q := compileResolved(t, filter.Filter{Resolution: filter.Resolution4K})
	assert.Equal(t, "4k", param(t, q, "videoResolution"))

	q = compileResolved(t, filter.Filter{Resolution: filter.ResolutionHD})
	assert.Equal(t, "1080", param(t, q, "videoResolution"))

	q = compileResolved(t, filter.Filter{Resolution: filter.ResolutionSD})
	assert.False(t, q.Params.Has("videoResolution"))
}

func TestCompile_PassThroughFields(t *testing.T) {
	q := compileResolved(t, filter.Filter{
		Title:         "Alien",
		Director:      "Ridley Scott",
		Actor:         "Sigourney Weaver",
		Studio:        "20th Century Fox",
		ContentRating: "R",
		Genre:         "sci-fi",
	})

	assert.Equal(t, "Alien", param(t, q, "title"))
	assert.Equal(t, "Ridley Scott", param(t, q, "director"))
	assert.Equal(t, "Sigourney Weaver", param(t, q, "actor"))
	assert.Equal(t, "20th Century Fox", param(t, q, "studio"))
	assert.Equal(t, "R", param(t, q, "contentRating"))
	assert.Equal(t, "sci-fi", param(t, q, "genre"))
}

func TestCompile_Sort(t *testing.T) {
	tests := []struct {
		name  string
		field filter.SortField
		order filter.SortOrder
		want  string
	}{
		{"title default", "", "", "titleSort:desc"},
		{"rating asc", filter.SortRating, filter.OrderAsc, "rating:asc"},
		{"random keeps direction", filter.SortRandom, "", "random:desc"},
		{"unknown field", "popularity", filter.OrderAsc, "titleSort:asc"},
		{"last viewed", filter.SortLastViewedAt, filter.OrderDesc, "lastViewedAt:desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := compileResolved(t, filter.Filter{Sort: tt.field, SortOrder: tt.order})
			assert.Equal(t, tt.want, q.Sort)
			assert.Equal(t, tt.want, param(t, q, "sort"))
		})
	}
}

func TestCompile_RandomFromTextIsAscending(t *testing.T) {
	q := compileText(t, "random comedy")
	assert.Equal(t, "random:asc", q.Sort)
}

func TestCompile_WindowUsesLimit(t *testing.T) {
	f := filter.Filter{Limit: filter.Ptr(10)}
	first := compileResolved(t, f)
	second := compileResolved(t, f)

	assert.Equal(t, query.Window{Start: 0, Size: 10}, first.Window)
	assert.Equal(t, first.Window, second.Window)
}

func TestCompile_UnresolvedLimitDefaults(t *testing.T) {
	q, err := query.Compile(filter.Filter{}, testSections, testNow)
	require.NoError(t, err)
	assert.Equal(t, query.Window{Start: 0, Size: filter.DefaultLimit}, q.Window)
}

func TestSuggestSort(t *testing.T) {
	got, ok := query.SuggestSort("ratng")
	require.True(t, ok)
	assert.Equal(t, filter.SortRating, got)

	got, ok = query.SuggestSort("addedat")
	require.True(t, ok)
	assert.Equal(t, filter.SortAddedAt, got)

	_, ok = query.SuggestSort("zzzzzz")
	assert.False(t, ok)
}

func itoa(n int) string {
	return query.FormatValue(n)
}
