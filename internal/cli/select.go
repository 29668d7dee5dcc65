package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/vocabgrid/internal/config"
	"github.com/mcoot/vocabgrid/internal/model"
)

func newSelectCmd() *cobra.Command {
	var (
		lvl     int
		count   int
		themeID string
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select words for a level without building a grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := levelRequest(lvl, 0)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = app.Difficulty.DesiredWordCount(lvl)
			}

			var (
				sel model.Selection
				th  *model.Theme
			)
			if themeID != "" {
				th, err = config.FindTheme(app.ThemeList, themeID)
				if err != nil {
					return err
				}
				sel = app.Themes.SelectWordsFromTheme(req.Vocabulary, th, req.State, count)
			} else {
				sel = app.Selector.SelectWordsForLevel(req.Vocabulary, req.State, count)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(newSelectionView(sel, req.State, count, th))
			return nil
		},
	}

	cmd.Flags().IntVar(&lvl, "level", 1, "Level number, sets the word count when --count is not given")
	cmd.Flags().IntVar(&count, "count", 0, "Number of words to select")
	cmd.Flags().StringVar(&themeID, "theme", "", "Restrict the selection to a theme id")

	return cmd
}
