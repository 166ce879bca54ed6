package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vmunix/plexfind/pkg/query"
)

// SectionLister supplies library sections.
type SectionLister interface {
	Sections(ctx context.Context) ([]query.Section, error)
}

// Sections serves a section list from the cache, falling through to the
// wrapped lister on a miss. Cache failures never fail the lookup.
type Sections struct {
	inner SectionLister
	cache *Cache
	key   string
	ttl   time.Duration
	log   *slog.Logger
}

// NewSections caches inner's listing under "sections:" + server for ttl.
func NewSections(inner SectionLister, cache *Cache, server string, ttl time.Duration, logger *slog.Logger) *Sections {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sections{
		inner: inner,
		cache: cache,
		key:   "sections:" + server,
		ttl:   ttl,
		log:   logger.With("component", "section-cache"),
	}
}

// Sections returns the cached listing, or fetches and caches a fresh one.
func (s *Sections) Sections(ctx context.Context) ([]query.Section, error) {
	if data, ok := s.cache.Get(ctx, s.key); ok {
		var sections []query.Section
		if err := json.Unmarshal(data, &sections); err == nil {
			s.log.Debug("section cache hit", "sections", len(sections))
			return sections, nil
		}
		s.log.Debug("discarding unreadable section cache entry")
		if err := s.cache.Delete(ctx, s.key); err != nil {
			s.log.Warn("failed to drop section cache entry", "error", err)
		}
	}

	sections, err := s.inner.Sections(ctx)
	if err != nil {
		return nil, err
	}
	s.Store(ctx, sections)
	return sections, nil
}

// Store replaces the cached listing.
func (s *Sections) Store(ctx context.Context, sections []query.Section) {
	data, err := json.Marshal(sections)
	if err == nil {
		err = s.cache.Set(ctx, s.key, data, s.ttl)
	}
	if err != nil {
		s.log.Warn("failed to cache sections", "error", err)
	}
}
