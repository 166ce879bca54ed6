package search_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/plexfind/internal/plex"
	"github.com/vmunix/plexfind/internal/search"
	"github.com/vmunix/plexfind/internal/search/mocks"
	"github.com/vmunix/plexfind/pkg/filter"
	"github.com/vmunix/plexfind/pkg/query"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	sections = []query.Section{
		{ID: "1", Type: "movie", Title: "Movies"},
		{ID: "2", Type: "show", Title: "TV Shows"},
	}
)

func newService(t *testing.T) (*search.Service, *mocks.MockSectionLister, *mocks.MockExecutor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockSectionLister(ctrl)
	exec := mocks.NewMockExecutor(ctrl)
	svc := search.NewService(lister, exec, testLogger(), search.WithClock(func() time.Time { return fixedNow }))
	return svc, lister, exec
}

func TestService_SearchText(t *testing.T) {
	svc, lister, exec := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return(sections, nil)
	exec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *query.Compiled) ([]plex.Record, error) {
			assert.Equal(t, "2", q.SectionID)
			assert.Equal(t, "rating:desc", q.Sort)
			return []plex.Record{{RatingKey: "10", Title: "Community", Type: "show"}}, nil
		})

	result, err := svc.Search(context.Background(), search.Request{Text: "top rated comedy shows"})
	require.NoError(t, err)

	assert.Equal(t, filter.TypeShow, result.Filter.Type)
	assert.Equal(t, "comedy", result.Filter.Genre)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Community", result.Records[0].Title)

	v, ok := result.Query.Params.Get("type")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestService_SearchStructured(t *testing.T) {
	svc, lister, exec := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return(sections, nil)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, nil)

	result, err := svc.Search(context.Background(), search.Request{
		Filter: &filter.Filter{
			Type:               filter.TypeMovie,
			MinDurationMinutes: filter.Ptr(90),
			MaxDurationMinutes: filter.Ptr(150),
		},
	})
	require.NoError(t, err)

	lo, _ := result.Query.Params.Get("duration>>")
	hi, _ := result.Query.Params.Get("duration<<")
	assert.Equal(t, int64(5400000), lo)
	assert.Equal(t, int64(9000000), hi)
	assert.Equal(t, "titleSort:desc", result.Query.Sort, "structured callers default to descending")
	assert.Equal(t, query.Window{Start: 0, Size: 25}, result.Query.Window)
}

func TestService_ExplicitSectionSkipsLookup(t *testing.T) {
	svc, _, exec := newService(t)

	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, nil)

	result, err := svc.Search(context.Background(), search.Request{
		Filter: &filter.Filter{Type: filter.TypeShow, SectionID: "9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9", result.Query.SectionID)
}

func TestService_NoMatchingSection(t *testing.T) {
	svc, lister, _ := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return([]query.Section{{ID: "2", Type: "show"}}, nil)

	result, err := svc.Search(context.Background(), search.Request{
		Filter: &filter.Filter{Type: filter.TypeMovie},
	})
	require.ErrorIs(t, err, query.ErrNoSection)
	assert.Nil(t, result)
}

func TestService_SectionListFailure(t *testing.T) {
	svc, lister, _ := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.Search(context.Background(), search.Request{Text: "movies"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list sections")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_ExecuteFailure(t *testing.T) {
	svc, lister, exec := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return(sections, nil)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, errors.New("unexpected status: 500"))

	_, err := svc.Search(context.Background(), search.Request{Text: "movies"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute search")
}

func TestService_StructuredRequiresType(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Search(context.Background(), search.Request{Filter: &filter.Filter{Genre: "drama"}})
	assert.ErrorIs(t, err, search.ErrTypeRequired)
}

func TestService_CompileDoesNotExecute(t *testing.T) {
	svc, lister, _ := newService(t)

	lister.EXPECT().Sections(gomock.Any()).Return(sections, nil)

	f, q, err := svc.Compile(context.Background(), search.Request{Text: "movies added in the last 3 days"})
	require.NoError(t, err)

	assert.Equal(t, filter.Ptr(3), f.AddedWithinDays)
	v, ok := q.Params.Get("addedAt>>")
	require.True(t, ok)
	assert.Equal(t, fixedNow.Unix()-3*86400, v)
}

func TestService_WithoutExecutor(t *testing.T) {
	svc := search.NewService(nil, nil, nil)

	_, err := svc.Search(context.Background(), search.Request{
		Filter: &filter.Filter{Type: filter.TypeMovie, SectionID: "1"},
	})
	assert.ErrorIs(t, err, search.ErrNoExecutor)

	_, _, err = svc.Compile(context.Background(), search.Request{Text: "movies"})
	assert.ErrorIs(t, err, query.ErrNoSection)
}

func TestService_FallbackSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockSectionLister(ctrl)
	svc := search.NewService(lister, nil, testLogger(), search.WithFallbackSection("7"))

	lister.EXPECT().Sections(gomock.Any()).Return([]query.Section{{ID: "2", Type: "show"}}, nil)

	f, q, err := svc.Compile(context.Background(), search.Request{Text: "movies"})
	require.NoError(t, err)
	assert.Equal(t, "7", f.SectionID)
	assert.Equal(t, "7", q.SectionID)
}

func TestService_FallbackSectionOffline(t *testing.T) {
	svc := search.NewService(nil, nil, testLogger(), search.WithFallbackSection("3"))

	_, q, err := svc.Compile(context.Background(), search.Request{Text: "unwatched movies"})
	require.NoError(t, err)
	assert.Equal(t, "3", q.SectionID)
}

func TestService_DefaultLimit(t *testing.T) {
	svc := search.NewService(nil, nil, testLogger(), search.WithDefaultLimit(50))

	_, q, err := svc.Compile(context.Background(), search.Request{
		Filter: &filter.Filter{Type: filter.TypeMovie, SectionID: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, q.Window.Size)

	_, q, err = svc.Compile(context.Background(), search.Request{
		Filter: &filter.Filter{Type: filter.TypeMovie, SectionID: "1", Limit: filter.Ptr(5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, q.Window.Size, "explicit limit wins")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		req  search.Request
		want filter.Filter
	}{
		{
			name: "text",
			req:  search.Request{Text: "best horror"},
			want: filter.Filter{
				Type: filter.TypeMovie, Genre: "horror",
				Sort: filter.SortRating, SortOrder: filter.OrderDesc, Limit: filter.Ptr(25),
			},
		},
		{
			name: "structured",
			req:  search.Request{Filter: &filter.Filter{Type: filter.TypeShow, Genre: "drama"}},
			want: filter.Filter{
				Type: filter.TypeShow, Genre: "drama",
				Sort: filter.SortTitle, SortOrder: filter.OrderDesc, Limit: filter.Ptr(25),
			},
		},
		{
			name: "structured overrides text",
			req: search.Request{
				Text:   "best horror movies",
				Filter: &filter.Filter{Genre: "comedy", Limit: filter.Ptr(5)},
			},
			want: filter.Filter{
				Type: filter.TypeMovie, Genre: "comedy",
				Sort: filter.SortRating, SortOrder: filter.OrderDesc, Limit: filter.Ptr(5),
			},
		},
		{
			name: "text with structured limit keeps text sort order",
			req: search.Request{
				Text:   "comedy",
				Filter: &filter.Filter{Limit: filter.Ptr(10)},
			},
			want: filter.Filter{
				Type: filter.TypeMovie, Genre: "comedy",
				Sort: filter.SortTitle, SortOrder: filter.OrderAsc, Limit: filter.Ptr(10),
			},
		},
		{
			name: "structured sort without order uses structured order",
			req: search.Request{
				Text:   "comedy",
				Filter: &filter.Filter{Sort: filter.SortYear},
			},
			want: filter.Filter{
				Type: filter.TypeMovie, Genre: "comedy",
				Sort: filter.SortYear, SortOrder: filter.OrderDesc, Limit: filter.Ptr(25),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := search.Resolve(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
