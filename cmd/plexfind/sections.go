package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexfind/internal/cache"
	"github.com/vmunix/plexfind/internal/plex"
	"github.com/vmunix/plexfind/pkg/query"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the Plex server's library sections",
	Args:  cobra.NoArgs,
	RunE:  runSectionsCmd,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

// serverInfo is the server identity together with its sections.
type serverInfo struct {
	Server   *plex.Identity `json:"server"`
	Sections []plex.Section `json:"sections"`
}

// sectionSource is the part of the Plex client the sections command uses.
type sectionSource interface {
	GetIdentity(ctx context.Context) (*plex.Identity, error)
	GetSections(ctx context.Context) ([]plex.Section, error)
}

// fetchServerInfo requests identity and sections concurrently.
func fetchServerInfo(ctx context.Context, src sectionSource) (*serverInfo, error) {
	var info serverInfo
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		id, err := src.GetIdentity(ctx)
		if err != nil {
			return fmt.Errorf("server identity: %w", err)
		}
		info.Server = id
		return nil
	})
	g.Go(func() error {
		sections, err := src.GetSections(ctx)
		if err != nil {
			return fmt.Errorf("library sections: %w", err)
		}
		info.Sections = sections
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &info, nil
}

func runSectionsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	client, err := newPlexClient(cfg, logger)
	if err != nil {
		return err
	}

	info, err := fetchServerInfo(cmd.Context(), client)
	if err != nil {
		return err
	}

	// A live listing is always fresher than the cached one.
	if db := openCacheDB(cmd.Context(), cfg, logger); db != nil {
		defer func() { _ = db.Close() }()
		cache.NewSections(client, cache.New(db), cfg.Plex.URL, cfg.Search.SectionCacheTTL, logger).
			Store(cmd.Context(), querySections(info.Sections))
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), info)
	}
	printSectionsHuman(cmd.OutOrStdout(), info)
	return nil
}

func querySections(sections []plex.Section) []query.Section {
	out := make([]query.Section, len(sections))
	for i, s := range sections {
		out[i] = s.Query()
	}
	return out
}

func printSectionsHuman(w io.Writer, info *serverInfo) {
	fmt.Fprintf(w, "Plex: %s (%s)\n\n", info.Server.Name, info.Server.Version)
	if len(info.Sections) == 0 {
		fmt.Fprintln(w, "No library sections.")
		return
	}
	fmt.Fprintf(w, "  %-4s %-8s %s\n", "ID", "TYPE", "TITLE")
	for _, s := range info.Sections {
		line := fmt.Sprintf("  %-4s %-8s %s", s.Key, s.Type, s.Title)
		if s.Refreshing() {
			line += " (scanning)"
		}
		fmt.Fprintln(w, line)
	}
}
