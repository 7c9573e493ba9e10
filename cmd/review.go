package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/quiz"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review stored mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.mistakes().Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("count mistakes: %w", err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No mistakes to review.")
			return nil
		}
		return app.Run(app.Options{
			Deps:  e.deps(),
			Start: func(d quiz.Deps) screen.Screen { return quiz.NewReview(d) },
		})
	},
}
