package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := e.store.SessionRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet.")
			return nil
		}
		return writeHistory(cmd.OutOrStdout(), recs)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show (0 for all)")
}

func writeHistory(w io.Writer, recs []store.SessionRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tSCORE\tGRADE\tTIME")
	for _, rec := range recs {
		kind := facts.Mode(rec.Mode).Label()
		if rec.Review {
			kind = "Review"
		}
		grade := "-"
		if !rec.Review {
			grade = fmt.Sprintf("%d %s", rec.Grade, session.Grade(rec.Grade))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n",
			rec.EndedAt.Local().Format(time.DateTime),
			kind,
			rec.Score, rec.Total,
			grade,
			rec.Duration().Round(time.Second),
		)
	}
	return tw.Flush()
}
