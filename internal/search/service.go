package search

//go:generate mockgen -destination=mocks/search.go -package=mocks github.com/vmunix/plexfind/internal/search SectionLister,Executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/plexfind/internal/plex"
	"github.com/vmunix/plexfind/pkg/filter"
	"github.com/vmunix/plexfind/pkg/query"
)

// SectionLister supplies the library sections a query can target.
type SectionLister interface {
	Sections(ctx context.Context) ([]query.Section, error)
}

// Executor runs a compiled query against the media server.
type Executor interface {
	Execute(ctx context.Context, q *query.Compiled) ([]plex.Record, error)
}

// Request is a library search. Text is scanned for signals; Filter is a
// structured filter whose set fields take precedence over the text's.
type Request struct {
	Text   string
	Filter *filter.Filter
}

// Result is the outcome of a search.
type Result struct {
	Filter  filter.Filter   `json:"filter"`
	Query   *query.Compiled `json:"query"`
	Records []plex.Record   `json:"records"`
}

// Service runs the extract, resolve, compile and execute pipeline.
type Service struct {
	sections SectionLister
	executor Executor
	now      func() time.Time
	logger   *slog.Logger

	fallbackSection string
	limit           int
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for relative date bounds.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFallbackSection sets the section searched when the request names none
// and no listed section matches the requested type.
func WithFallbackSection(id string) Option {
	return func(s *Service) {
		s.fallbackSection = id
	}
}

// WithDefaultLimit overrides the page size for requests that set no limit.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewService creates a search service.
func NewService(sections SectionLister, executor Executor, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		sections: sections,
		executor: executor,
		now:      time.Now,
		logger:   logger.With("component", "search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve turns a request into a canonical filter without touching the
// media server.
func Resolve(req Request) (filter.Filter, error) {
	switch {
	case req.Filter == nil:
		return filter.Resolve(filter.Extract(req.Text), filter.TextDefaults), nil
	case req.Text == "":
		if req.Filter.Type == "" {
			return filter.Filter{}, ErrTypeRequired
		}
		return filter.Resolve(*req.Filter, filter.StructuredDefaults), nil
	default:
		merged := filter.Merge(filter.Extract(req.Text), *req.Filter)
		// Structured fields that leave the sort alone keep the text ordering.
		defaults := filter.TextDefaults
		if req.Filter.Sort != "" {
			defaults = filter.StructuredDefaults
		}
		return filter.Resolve(merged, defaults), nil
	}
}

// Compile resolves the request and compiles it. Sections are fetched only
// when the filter names none.
func (s *Service) Compile(ctx context.Context, req Request) (filter.Filter, *query.Compiled, error) {
	f, err := Resolve(req)
	if err != nil {
		return filter.Filter{}, nil, err
	}
	if s.limit > 0 && (req.Filter == nil || req.Filter.Limit == nil) {
		f.Limit = filter.Ptr(s.limit)
	}

	if !query.IsSortField(f.Sort) {
		if suggestion, ok := query.SuggestSort(string(f.Sort)); ok {
			s.logger.Warn("unknown sort field, using titleSort", "sort", f.Sort, "suggestion", suggestion)
		} else {
			s.logger.Warn("unknown sort field, using titleSort", "sort", f.Sort)
		}
	}

	var sections []query.Section
	if f.SectionID == "" && s.sections != nil {
		sections, err = s.sections.Sections(ctx)
		if err != nil {
			return f, nil, fmt.Errorf("list sections: %w", err)
		}
	}

	now := s.now()
	q, err := query.Compile(f, sections, now)
	if errors.Is(err, query.ErrNoSection) && s.fallbackSection != "" {
		s.logger.Debug("no section matches type, using fallback", "type", f.Type, "section", s.fallbackSection)
		f.SectionID = s.fallbackSection
		q, err = query.Compile(f, nil, now)
	}
	if err != nil {
		s.logger.Debug("compile failed", "type", f.Type, "sections", len(sections), "error", err)
		return f, nil, err
	}

	s.logger.Debug("compiled query",
		"section", q.SectionID,
		"params", q.Params.Len(),
		"sort", q.Sort,
		"size", q.Window.Size)
	return f, q, nil
}

// Search compiles the request and executes it.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	f, q, err := s.Compile(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.executor == nil {
		return nil, ErrNoExecutor
	}

	start := time.Now()
	records, err := s.executor.Execute(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	s.logger.Info("search complete",
		"section", q.SectionID,
		"results", len(records),
		"duration_ms", time.Since(start).Milliseconds())

	return &Result{Filter: f, Query: q, Records: records}, nil
}
