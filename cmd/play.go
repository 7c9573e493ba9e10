package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/quiz"
	"github.com/abhisek/mathdrill/internal/session"
)

var playCmd = &cobra.Command{
	Use:       "play [multiplication|division]",
	Short:     "Start a quiz without going through the settings screen",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(facts.Multiplication), string(facts.Division)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sc, err := playConfig(cmd, args, cfg.SessionDefaults())
		if err != nil {
			return err
		}
		return runApp(cmd, func(d quiz.Deps) screen.Screen { return quiz.New(d, sc) })
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().IntSlice("operands", nil, "Factors or divisors to drill (default: all)")
	c.Flags().String("range", "", "Dividend range for division: low, medium or high")
	c.Flags().Int("count", 0, "Number of questions")
	c.Flags().Int("timer", 0, "Seconds per question")
}

// playConfig builds the session config from the mode argument and the
// play flags, starting from defaults.
func playConfig(cmd *cobra.Command, args []string, defaults session.Config) (session.Config, error) {
	sc := defaults
	sc.Mode = facts.Multiplication
	if len(args) == 1 {
		mode, err := facts.ParseMode(args[0])
		if err != nil {
			return session.Config{}, err
		}
		sc.Mode = mode
	}

	operands, _ := cmd.Flags().GetIntSlice("operands")
	switch {
	case len(operands) > 0:
		sc.Operands = operands
	case sc.Mode == facts.Division:
		sc.Operands = problemgen.DefaultDivisors()
	default:
		sc.Operands = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	}

	if name, _ := cmd.Flags().GetString("range"); name != "" {
		r, err := problemgen.RangeByName(name)
		if err != nil {
			return session.Config{}, err
		}
		sc.DividendRange = r
	}
	if cmd.Flags().Changed("count") {
		sc.QuestionCount, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("timer") {
		sc.TimerSeconds, _ = cmd.Flags().GetInt("timer")
	}

	if err := sc.Validate(); err != nil {
		return session.Config{}, fmt.Errorf("play: %w", err)
	}
	return sc, nil
}
