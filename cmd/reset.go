package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored mistakes and session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset deletes all progress; pass --yes to confirm")
		}
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Reset(cmd.Context()); err != nil {
			return err
		}
		e.logger.Info("store reset", "path", e.cfg.DBPath)
		fmt.Fprintln(cmd.OutOrStdout(), "All progress deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
