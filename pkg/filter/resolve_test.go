package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Defaults(t *testing.T) {
	got := Resolve(Filter{}, TextDefaults)

	assert.Equal(t, TypeMovie, got.Type)
	assert.Equal(t, SortTitle, got.Sort)
	assert.Equal(t, OrderAsc, got.SortOrder)
	assert.Equal(t, Ptr(25), got.Limit)
}

func TestResolve_StructuredDefaultsSortDescending(t *testing.T) {
	got := Resolve(Filter{Type: TypeShow}, StructuredDefaults)

	assert.Equal(t, TypeShow, got.Type)
	assert.Equal(t, SortTitle, got.Sort)
	assert.Equal(t, OrderDesc, got.SortOrder)
	assert.Equal(t, Ptr(DefaultLimit), got.Limit)
}

func TestResolve_KeepsExplicitValues(t *testing.T) {
	in := Filter{
		Type:      TypeTrack,
		Sort:      SortRating,
		SortOrder: OrderDesc,
		Limit:     Ptr(5),
	}
	assert.Equal(t, in, Resolve(in, TextDefaults))
}

func TestResolve_UnknownOrderBecomesAscending(t *testing.T) {
	got := Resolve(Filter{SortOrder: "sideways"}, StructuredDefaults)
	assert.Equal(t, OrderAsc, got.SortOrder)
}

func TestResolve_RandomSortTakesDefaultOrder(t *testing.T) {
	got := Resolve(Extract("surprise me"), TextDefaults)
	assert.Equal(t, SortRandom, got.Sort)
	assert.Equal(t, OrderAsc, got.SortOrder)
}

func TestResolve_PassesContradictionsThrough(t *testing.T) {
	in := Filter{
		Watched:   true,
		Unwatched: true,
		MinYear:   Ptr(2020),
		MaxYear:   Ptr(1990),
		MinRating: Ptr(-3.0),
	}
	got := Resolve(in, TextDefaults)

	assert.True(t, got.Watched)
	assert.True(t, got.Unwatched)
	assert.Equal(t, Ptr(2020), got.MinYear)
	assert.Equal(t, Ptr(1990), got.MaxYear)
	assert.Equal(t, Ptr(-3.0), got.MinRating)
}

func TestMerge_OverlayWins(t *testing.T) {
	base := Extract("top rated comedy shows from 1990")
	overlay := Filter{
		Type:    TypeMovie,
		Genre:   "drama",
		MinYear: Ptr(2000),
		Actor:   "Tom Hanks",
	}

	got := Merge(base, overlay)

	assert.Equal(t, TypeMovie, got.Type)
	assert.Equal(t, "drama", got.Genre)
	assert.Equal(t, Ptr(2000), got.MinYear)
	assert.Equal(t, "Tom Hanks", got.Actor)
	assert.Equal(t, SortRating, got.Sort, "unset overlay field keeps extracted value")
	assert.Equal(t, OrderDesc, got.SortOrder)
}

func TestMerge_OverlaySortResetsExtractedOrder(t *testing.T) {
	base := Extract("best movies")
	got := Merge(base, Filter{Sort: SortYear})

	assert.Equal(t, SortYear, got.Sort)
	assert.Equal(t, SortOrder(""), got.SortOrder)
	assert.Equal(t, OrderDesc, Resolve(got, StructuredDefaults).SortOrder)
}

func TestMerge_BooleansAccumulate(t *testing.T) {
	got := Merge(Filter{Unwatched: true}, Filter{InProgress: true})

	assert.True(t, got.Unwatched)
	assert.True(t, got.InProgress)
	assert.False(t, got.Watched)
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{Watched: true}.IsEmpty())
	assert.False(t, Filter{Year: Ptr(1999)}.IsEmpty())
}
