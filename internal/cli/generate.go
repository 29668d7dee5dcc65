package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/vocabgrid/internal/config"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/level"
)

func newGenerateCmd() *cobra.Command {
	var (
		lvl          int
		grade        int
		withSolution bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a level",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := levelRequest(lvl, grade)
			if err != nil {
				return err
			}

			result, err := app.Levels.GenerateLevel(req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(newLevelView(result, withSolution))
			return nil
		},
	}

	cmd.Flags().IntVar(&lvl, "level", 1, "Level number")
	cmd.Flags().IntVar(&grade, "grade", 0, "Learner grade, sets the pre-fill ratio")
	cmd.Flags().BoolVar(&withSolution, "solution", false, "Include the solution")

	return cmd
}

// levelRequest builds a request from the loaded vocabulary, themes and learning state
func levelRequest(lvl, grade int) (level.LevelRequest, error) {
	state, err := config.LoadLearningState(cfg.State)
	if err != nil {
		return level.LevelRequest{}, fmt.Errorf("loading learning state: %w", err)
	}
	req, err := app.LevelRequest(lvl, grade, state)
	if errors.Is(err, model.ErrVocabularyNotLoaded) {
		return level.LevelRequest{}, fmt.Errorf("%w: pass --words or set words in vocabgrid.yaml", err)
	}
	return req, err
}
