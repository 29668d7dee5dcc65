package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var (
		from  int
		to    int
		grade int
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the theme, word count and pre-fill ratio of a range of levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 1 || to < from {
				return fmt.Errorf("invalid level range %d..%d", from, to)
			}

			plans := make([]PlanView, 0, to-from+1)
			for lvl := from; lvl <= to; lvl++ {
				plan, th := app.Themes.ThemeForLevel(lvl, app.ThemeList)
				words := app.Difficulty.DesiredWordCount(plan.Level)
				if plan.Challenge {
					words += app.Difficulty.ChallengeBonusWords()
				}
				view := PlanView{
					Level:        plan.Level,
					Challenge:    plan.Challenge,
					Words:        words,
					PreFillRatio: app.Difficulty.PreFillRatio(grade),
				}
				if th != nil {
					view.Theme = th.Name
				}
				plans = append(plans, view)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(plans)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 1, "First level")
	cmd.Flags().IntVar(&to, "to", 10, "Last level")
	cmd.Flags().IntVar(&grade, "grade", 0, "Learner grade")

	return cmd
}
