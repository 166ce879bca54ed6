package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexfind/internal/plex"
	"github.com/vmunix/plexfind/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] [query...]",
	Short: "Search the Plex library",
	Long: `Search the Plex library with plain-language text, structured flags, or both.
Flags override what the text implies.

Examples:
  plexfind search unwatched 90s sci-fi movies under 2 hours
  plexfind search "best comedies" --min-rating 8 --limit 10
  plexfind search --type show --genre drama --in-progress`,
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addFilterFlags(searchCmd.Flags())
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd.Flags(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	db := openCacheDB(cmd.Context(), cfg, logger)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	svc, err := newSearchService(cfg, db, logger)
	if err != nil {
		return err
	}

	result, err := svc.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	printSearchHuman(cmd.OutOrStdout(), result)
	return nil
}

func printSearchHuman(w io.Writer, r *search.Result) {
	if len(r.Records) == 0 {
		fmt.Fprintf(w, "No results in section %s.\n", r.Query.SectionID)
		return
	}

	fmt.Fprintf(w, "Found %d results in section %s (sort %s):\n\n", len(r.Records), r.Query.SectionID, r.Query.Sort)
	for i, rec := range r.Records {
		printRecordLine(w, i+1, rec)
	}
}

func printRecordLine(w io.Writer, n int, rec plex.Record) {
	title := rec.Title
	if rec.Year > 0 {
		title = fmt.Sprintf("%s (%d)", rec.Title, rec.Year)
	}

	var details []string
	if rec.Rating > 0 {
		details = append(details, fmt.Sprintf("%.1f", rec.Rating))
	}
	if rec.Duration > 0 {
		details = append(details, fmt.Sprintf("%dm", int(rec.Runtime().Minutes())))
	}
	if rec.ContentRating != "" {
		details = append(details, rec.ContentRating)
	}
	if len(rec.Genres) > 0 {
		details = append(details, strings.Join(rec.Genres, "/"))
	}
	switch {
	case rec.Progress() > 0:
		details = append(details, fmt.Sprintf("%d%% watched", int(rec.Progress()*100)))
	case rec.ViewCount > 0:
		details = append(details, "watched")
	}

	fmt.Fprintf(w, "%3d. %-48s %-8s %s\n", n, title, rec.Type, strings.Join(details, "  "))
}
