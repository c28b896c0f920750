package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived extractions",
	Long:  "Commands for listing, viewing, and summarizing archived extraction runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived extractions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		status, _ := cmd.Flags().GetString("status")
		source, _ := cmd.Flags().GetString("source")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		runs, err := st.ListExtractions(ctx, store.ListFilter{
			Status: model.ExtractionStatus(status),
			Source: source,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No extractions found.")
			return nil
		}

		formatRunsList(cmd.OutOrStdout(), runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <extraction-id>",
	Short: "Show an archived extraction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		rec, err := st.GetExtraction(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		if raw, _ := cmd.Flags().GetBool("payload"); raw {
			_, err := io.WriteString(cmd.OutOrStdout(), rec.Payload)
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return printValue(cmd.OutOrStdout(), format, rec)
	},
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate extraction statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		since, _ := cmd.Flags().GetDuration("since")
		runs, err := st.ListExtractions(ctx, store.ListFilter{Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}

		var cutoff time.Time
		if since > 0 {
			cutoff = time.Now().Add(-since)
		}
		formatRunStats(cmd.OutOrStdout(), computeRunStats(runs, cutoff))
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by status (ok, failed)")
	runsListCmd.Flags().String("source", "", "filter by source (e.g. file:list.json)")
	runsListCmd.Flags().Int("limit", 50, "max number of extractions to display")
	runsListCmd.Flags().Int("offset", 0, "number of extractions to skip")

	runsShowCmd.Flags().String("output", "json", "output format (json, yaml)")
	runsShowCmd.Flags().Bool("payload", false, "print only the raw payload snapshot")

	runsStatsCmd.Flags().Duration("since", 7*24*time.Hour, "time window for stats (0 for all)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// runStats holds aggregate statistics computed from a set of extractions.
type runStats struct {
	Total     int
	OK        int
	Failed    int
	Places    int
	AvgPlaces float64
}

// computeRunStats aggregates runs created at or after cutoff (zero means all).
func computeRunStats(runs []model.Extraction, cutoff time.Time) runStats {
	var s runStats
	for _, r := range runs {
		if !cutoff.IsZero() && r.CreatedAt.Before(cutoff) {
			continue
		}
		s.Total++
		switch r.Status {
		case model.ExtractionStatusOK:
			s.OK++
			s.Places += r.PlaceCount
		case model.ExtractionStatusFailed:
			s.Failed++
		}
	}
	if s.OK > 0 {
		s.AvgPlaces = float64(s.Places) / float64(s.OK)
	}
	return s
}

// formatRunsList writes a tabular list of extractions to w.
func formatRunsList(out io.Writer, runs []model.Extraction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSOURCE\tSTATUS\tPLACES\tCREATED\tERROR")
	_, _ = fmt.Fprintln(w, "--\t------\t------\t------\t-------\t-----")

	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			truncateID(r.ID),
			truncate(r.Source, 40),
			r.Status,
			r.PlaceCount,
			r.CreatedAt.Format("2006-01-02 15:04"),
			truncate(r.Error, 60),
		)
	}
	_ = w.Flush()
}

// formatRunStats writes aggregate stats to w.
func formatRunStats(out io.Writer, s runStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total extractions:\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "OK:\t%d\n", s.OK)
	_, _ = fmt.Fprintf(w, "Failed:\t%d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "Places extracted:\t%d\n", s.Places)
	if s.OK > 0 {
		_, _ = fmt.Fprintf(w, "Avg places per list:\t%.1f\n", s.AvgPlaces)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
