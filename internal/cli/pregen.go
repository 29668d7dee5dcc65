package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/vocabgrid/internal/services/level"
)

func newPregenCmd() *cobra.Command {
	var (
		from         int
		to           int
		grade        int
		withSolution bool
	)

	cmd := &cobra.Command{
		Use:   "pregen",
		Short: "Generate a range of levels in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 1 || to < from {
				return fmt.Errorf("invalid level range %d..%d", from, to)
			}

			requests := make([]level.LevelRequest, 0, to-from+1)
			for lvl := from; lvl <= to; lvl++ {
				req, err := levelRequest(lvl, grade)
				if err != nil {
					return err
				}
				requests = append(requests, req)
			}

			results, err := app.Levels.PregenerateLevels(cmd.Context(), requests)
			if err != nil {
				return err
			}

			views := make([]LevelView, len(results))
			for i, result := range results {
				views[i] = newLevelView(result, withSolution)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(views)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 1, "First level")
	cmd.Flags().IntVar(&to, "to", 10, "Last level")
	cmd.Flags().IntVar(&grade, "grade", 0, "Learner grade, sets the pre-fill ratio")
	cmd.Flags().BoolVar(&withSolution, "solution", false, "Include solutions")

	return cmd
}
