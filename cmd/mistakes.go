package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/mistakes"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Inspect and manage stored mistakes",
}

var mistakesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored mistakes in review order",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.mistakes().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load mistakes: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No mistakes stored.")
			return nil
		}
		return writeMistakes(out, recs)
	},
}

var mistakesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored mistake",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.mistakes().Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Mistakes cleared.")
		return nil
	},
}

var mistakesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write stored mistakes as a JSON array (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := e.mistakes().Export(cmd.Context())
		if err != nil {
			return fmt.Errorf("export mistakes: %w", err)
		}
		if len(args) == 0 || args[0] == "-" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var mistakesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add mistakes from a JSON array (\"-\" reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		recs, skipped, err := parseImport(data)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.mistakes()
		replace, _ := cmd.Flags().GetBool("replace")
		if replace {
			err = repo.ReplaceAll(cmd.Context(), recs)
		} else {
			err = repo.AppendAll(cmd.Context(), recs)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mistakes", len(recs))
		if skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (skipped %d unreadable)", skipped)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	mistakesImportCmd.Flags().Bool("replace", false, "Replace the stored mistakes instead of appending")

	mistakesCmd.AddCommand(mistakesListCmd)
	mistakesCmd.AddCommand(mistakesClearCmd)
	mistakesCmd.AddCommand(mistakesExportCmd)
	mistakesCmd.AddCommand(mistakesImportCmd)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// parseImport validates data against the mistake schema and drops records
// whose question cannot be rebuilt.
func parseImport(data []byte) ([]mistakes.Record, int, error) {
	recs, err := mistakes.Decode(data)
	if err != nil {
		return nil, 0, fmt.Errorf("import: %w", err)
	}
	kept := make([]mistakes.Record, 0, len(recs))
	for _, rec := range recs {
		if _, err := rec.Problem(); err != nil {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(recs) - len(kept), nil
}

func writeMistakes(w io.Writer, recs []mistakes.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMODE\tQUESTION\tANSWER\tGIVEN")
	for i, rec := range recs {
		given := fmt.Sprint(rec.UserAnswer)
		if rec.UserAnswer == 0 {
			given = "timeout"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1, rec.Mode, rec.Question, rec.CorrectAnswer, given)
	}
	return tw.Flush()
}
