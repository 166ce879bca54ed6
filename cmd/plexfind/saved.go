package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexfind/internal/saved"
	"github.com/vmunix/plexfind/internal/search"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
}

var savedAddCmd = &cobra.Command{
	Use:   "add [flags] <name> [query...]",
	Short: "Save a search under a name",
	Long: `Save a search under a name so it can be rerun with 'plexfind saved run'.

Examples:
  plexfind saved add friday short comedies rated above 7
  plexfind saved add kids --type movie --content-rating G --unwatched`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSavedAddCmd,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	Args:  cobra.NoArgs,
	RunE:  runSavedListCmd,
}

var savedShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedShowCmd,
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRmCmd,
}

var savedRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRunCmd,
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedAddCmd, savedListCmd, savedShowCmd, savedRmCmd, savedRunCmd)

	addFilterFlags(savedAddCmd.Flags())
	savedAddCmd.Flags().Bool("force", false, "Replace an existing search with the same name")
}

func runSavedAddCmd(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd.Flags(), args[1:])
	if err != nil {
		return err
	}
	// Reject requests that could never run.
	if _, err := search.Resolve(req); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, closeStore, err := openSavedStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	s := &saved.Search{Name: args[0], Text: req.Text, Filter: req.Filter}
	err = store.Add(s)
	if errors.Is(err, saved.ErrDuplicate) {
		if force, _ := cmd.Flags().GetBool("force"); force {
			err = store.Update(s)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", s.Name)
	return nil
}

func runSavedListCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, closeStore, err := openSavedStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := store.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		if list == nil {
			list = []*saved.Search{}
		}
		return printJSON(cmd.OutOrStdout(), list)
	}
	printSavedListHuman(cmd.OutOrStdout(), list)
	return nil
}

func runSavedShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, closeStore, err := openSavedStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	s, err := store.Get(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), s)
	}
	printSavedHuman(cmd.OutOrStdout(), s)
	return nil
}

func runSavedRmCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, closeStore, err := openSavedStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
	return nil
}

func runSavedRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	store, db, closeStore, err := openSavedStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	s, err := store.Get(args[0])
	if err != nil {
		return err
	}

	svc, err := newSearchService(cfg, db, logger)
	if err != nil {
		return err
	}
	result, err := svc.Search(cmd.Context(), search.Request{Text: s.Text, Filter: s.Filter})
	if err != nil {
		return fmt.Errorf("run %q: %w", s.Name, err)
	}
	if err := store.MarkRun(s.Name); err != nil {
		logger.Warn("failed to record saved search run", "name", s.Name, "error", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	printSearchHuman(cmd.OutOrStdout(), result)
	return nil
}

// describeSaved summarizes a saved search on one line.
func describeSaved(s *saved.Search) string {
	var parts []string
	if s.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", s.Text))
	}
	if f := s.Filter; f != nil {
		before := len(parts)
		if f.Type != "" {
			parts = append(parts, "type="+string(f.Type))
		}
		if f.Genre != "" {
			parts = append(parts, "genre="+f.Genre)
		}
		if f.SectionID != "" {
			parts = append(parts, "section="+f.SectionID)
		}
		if f.Unwatched {
			parts = append(parts, "unwatched")
		}
		if f.InProgress {
			parts = append(parts, "in-progress")
		}
		if len(parts) == before {
			parts = append(parts, "+filter")
		}
	}
	return strings.Join(parts, " ")
}

func printSavedListHuman(w io.Writer, list []*saved.Search) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No saved searches.")
		return
	}
	fmt.Fprintf(w, "%-20s %5s  %s\n", "NAME", "RUNS", "SEARCH")
	for _, s := range list {
		fmt.Fprintf(w, "%-20s %5d  %s\n", s.Name, s.RunCount, describeSaved(s))
	}
}

func printSavedHuman(w io.Writer, s *saved.Search) {
	fmt.Fprintf(w, "Name:     %s\n", s.Name)
	if s.Text != "" {
		fmt.Fprintf(w, "Text:     %s\n", s.Text)
	}
	fmt.Fprintf(w, "Created:  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	if s.LastRunAt != nil {
		fmt.Fprintf(w, "Last run: %s (%d runs)\n", s.LastRunAt.Local().Format("2006-01-02 15:04"), s.RunCount)
	}
	if s.Filter != nil {
		fmt.Fprintln(w, "Filter:")
		_ = printJSON(w, s.Filter)
	}
}
