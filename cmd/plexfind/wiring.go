package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/plexfind/internal/cache"
	"github.com/vmunix/plexfind/internal/config"
	"github.com/vmunix/plexfind/internal/migrations"
	"github.com/vmunix/plexfind/internal/plex"
	"github.com/vmunix/plexfind/internal/saved"
	"github.com/vmunix/plexfind/internal/search"
)

// openDB opens the local database, creating it and its directory if needed,
// and applies the schema.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection avoids SQLITE_BUSY between the cache and the store.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// sectionLister returns the client's section lookup, cached in db when the
// config enables it. db may be nil.
func sectionLister(cfg *config.Config, client *plex.Client, db *sql.DB, logger *slog.Logger) search.SectionLister {
	if db == nil || cfg.Search.SectionCacheTTL <= 0 {
		return client
	}
	return cache.NewSections(client, cache.New(db), cfg.Plex.URL, cfg.Search.SectionCacheTTL, logger)
}

// newSearchService wires the Plex client in as executor and, through the
// section cache, as section lister.
func newSearchService(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*search.Service, error) {
	client, err := newPlexClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return search.NewService(sectionLister(cfg, client, db, logger), client, logger,
		search.WithFallbackSection(cfg.Search.Section),
		search.WithDefaultLimit(cfg.Search.Limit)), nil
}

// openCacheDB opens the database for section caching and drops expired
// entries. Failure only costs the cache, so it is logged and nil returned.
func openCacheDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) *sql.DB {
	if cfg.Search.SectionCacheTTL <= 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := openDB(cfg.Database.Path)
	if err != nil {
		logger.Warn("section cache unavailable", "path", cfg.Database.Path, "error", err)
		return nil
	}
	if n, err := cache.New(db).Prune(ctx); err != nil {
		logger.Warn("failed to prune response cache", "error", err)
	} else if n > 0 {
		logger.Debug("pruned response cache", "removed", n)
	}
	return db
}

// openSavedStore opens the saved-search store. The returned func closes it.
func openSavedStore(cfg *config.Config) (*saved.Store, *sql.DB, func(), error) {
	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	return saved.NewStore(db), db, func() { _ = db.Close() }, nil
}
