package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexfind/internal/search"
	"github.com/vmunix/plexfind/pkg/filter"
	"github.com/vmunix/plexfind/pkg/query"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [query...]",
	Short: "Show the Plex query a search compiles to",
	Long: `Compile a search into Plex library parameters without running it.

Sections come from --sections, the configured server, or --section.

Examples:
  plexfind compile top rated comedy shows --sections 1:movie,2:show
  plexfind compile --type movie --min-duration 90 --max-duration 150 --section 1
  plexfind compile --json "90s sci-fi movies"`,
	RunE: runCompileCmd,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	addFilterFlags(compileCmd.Flags())
	compileCmd.Flags().String("sections", "", "Library sections as id:type pairs, e.g. 1:movie,2:show")
}

// staticSections serves a fixed section list.
type staticSections []query.Section

func (s staticSections) Sections(context.Context) ([]query.Section, error) {
	return s, nil
}

// parseSections parses "id:type[,id:type...]".
func parseSections(s string) ([]query.Section, error) {
	var out []query.Section
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, typ, ok := strings.Cut(part, ":")
		id, typ = strings.TrimSpace(id), strings.TrimSpace(typ)
		if !ok || id == "" || typ == "" {
			return nil, fmt.Errorf("invalid section %q: want id:type", part)
		}
		out = append(out, query.Section{ID: id, Type: strings.ToLower(typ)})
	}
	return out, nil
}

// compileOutput is the --json shape of the compile command.
type compileOutput struct {
	Filter filter.Filter   `json:"filter"`
	Query  *query.Compiled `json:"query"`
	Path   string          `json:"path"`
}

func runCompileCmd(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd.Flags(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	var lister search.SectionLister
	if raw, _ := cmd.Flags().GetString("sections"); raw != "" {
		sections, err := parseSections(raw)
		if err != nil {
			return err
		}
		lister = staticSections(sections)
	} else if client, err := newPlexClient(cfg, logger); err == nil {
		db := openCacheDB(cmd.Context(), cfg, logger)
		if db != nil {
			defer func() { _ = db.Close() }()
		}
		lister = sectionLister(cfg, client, db, logger)
	}

	svc := search.NewService(lister, nil, logger,
		search.WithFallbackSection(cfg.Search.Section),
		search.WithDefaultLimit(cfg.Search.Limit))

	f, q, err := svc.Compile(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := compileOutput{Filter: f, Query: q, Path: sectionPath(q)}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printCompiledHuman(cmd.OutOrStdout(), out)
	return nil
}

func sectionPath(q *query.Compiled) string {
	return fmt.Sprintf("/library/sections/%s/all?%s", q.SectionID, q.Values())
}

func printCompiledHuman(w io.Writer, out compileOutput) {
	q := out.Query
	fmt.Fprintf(w, "Section:  %s\n", q.SectionID)
	fmt.Fprintf(w, "Sort:     %s\n", q.Sort)
	fmt.Fprintf(w, "Window:   start %d, size %d\n", q.Window.Start, q.Window.Size)
	fmt.Fprintln(w, "Params:")
	for _, p := range q.Params.All() {
		fmt.Fprintf(w, "  %-16s %s\n", p.Key, query.FormatValue(p.Value))
	}
	fmt.Fprintf(w, "Path:     %s\n", out.Path)
}
