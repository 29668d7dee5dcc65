package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/level"
)

// Grid symbols used in text and JSON output
const (
	symbolEmpty = '.'
	symbolBlank = '_'
)

var (
	crossPointStyle = color.New(color.FgYellow, color.Bold)
	preFilledStyle  = color.New(color.FgGreen)
	solutionStyle   = color.New(color.FgCyan)
	blankStyle      = color.New(color.Faint)
	headingStyle    = color.New(color.Bold)
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LevelView:
		o.printLevel(v)
	case []LevelView:
		for i, lv := range v {
			if i > 0 {
				fmt.Fprintln(o.w)
			}
			o.printLevel(lv)
		}
	case SelectionView:
		o.printSelection(v)
	case []PlanView:
		o.printPlans(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LevelView is a generated level as shown to the user
type LevelView struct {
	Level        int        `json:"level"`
	Challenge    bool       `json:"challenge"`
	Theme        string     `json:"theme,omitempty"`
	DesiredCount int        `json:"desired_count"`
	Rounds       int        `json:"rounds"`
	HasReview    bool       `json:"has_review"`
	Words        []string   `json:"words"`
	Layout       LayoutView `json:"layout"`
}

// LayoutView is a puzzle grid. Grid rows use '.' for empty cells, '_' for
// cells the player fills in and the letter for pre-filled cells.
type LayoutView struct {
	ID          string         `json:"id"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Grid        []string       `json:"grid"`
	Solution    []string       `json:"solution,omitempty"`
	CrossPoints []PositionView `json:"cross_points"`
	Words       []WordView     `json:"words"`
	Letters     string         `json:"letters"`
}

// PositionView is a grid coordinate
type PositionView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WordView is a placed word
type WordView struct {
	ID        string `json:"id"`
	Spelling  string `json:"spelling"`
	Direction string `json:"direction"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

// SelectionView is a word selection with each word's learning status
type SelectionView struct {
	Desired   int             `json:"desired"`
	Theme     string          `json:"theme,omitempty"`
	HasReview bool            `json:"has_review"`
	Words     []SelectedEntry `json:"words"`
}

// SelectedEntry is one selected word
type SelectedEntry struct {
	ID       string `json:"id"`
	Spelling string `json:"spelling"`
	Status   string `json:"status"`
}

// PlanView describes what a level will look like before it is generated
type PlanView struct {
	Level        int     `json:"level"`
	Challenge    bool    `json:"challenge"`
	Theme        string  `json:"theme,omitempty"`
	Words        int     `json:"words"`
	PreFillRatio float64 `json:"pre_fill_ratio"`
}

func newLevelView(result *level.LevelResult, withSolution bool) LevelView {
	view := LevelView{
		Level:        result.Plan.Level,
		Challenge:    result.Plan.Challenge,
		DesiredCount: result.DesiredCount,
		Rounds:       result.Rounds,
		HasReview:    result.Selection.HasReview,
		Layout:       newLayoutView(result.Layout, withSolution),
	}
	if result.Theme != nil {
		view.Theme = result.Theme.Name
	}
	for _, w := range result.Selection.Words {
		view.Words = append(view.Words, w.Spelling)
	}
	return view
}

func newLayoutView(layout *model.PuzzleLayout, withSolution bool) LayoutView {
	view := LayoutView{
		ID:          layout.ID,
		Rows:        layout.Size.Rows,
		Cols:        layout.Size.Cols,
		Letters:     string(layout.AllLetters),
		CrossPoints: []PositionView{},
	}

	var solution map[model.Position]rune
	if withSolution {
		solution = generator.Solution(layout)
	}

	for _, row := range layout.Grid {
		var shown, solved strings.Builder
		for _, cell := range row {
			switch {
			case cell.IsEmpty():
				shown.WriteRune(symbolEmpty)
				solved.WriteRune(symbolEmpty)
			case cell.IsPreFilled:
				shown.WriteRune(cell.Letter)
				solved.WriteRune(cell.Letter)
			default:
				shown.WriteRune(symbolBlank)
				solved.WriteRune(solution[cell.Position])
			}
		}
		view.Grid = append(view.Grid, shown.String())
		if withSolution {
			view.Solution = append(view.Solution, solved.String())
		}
	}

	for _, cell := range layout.CrossPoints() {
		view.CrossPoints = append(view.CrossPoints, PositionView{Row: cell.Position.Row, Col: cell.Position.Col})
	}
	for _, w := range layout.Words {
		view.Words = append(view.Words, WordView{
			ID:        string(w.ID),
			Spelling:  w.Spelling,
			Direction: string(w.Direction),
			Row:       w.Start.Row,
			Col:       w.Start.Col,
		})
	}
	return view
}

func newSelectionView(sel model.Selection, state model.LearningState, desired int, th *model.Theme) SelectionView {
	view := SelectionView{
		Desired:   desired,
		HasReview: sel.HasReview,
		Words:     []SelectedEntry{},
	}
	if th != nil {
		view.Theme = th.Name
	}
	for _, w := range sel.Words {
		status := "new"
		switch {
		case state.IsReview(w.ID):
			status = "review"
		case state.IsLearned(w.ID):
			status = "learned"
		}
		view.Words = append(view.Words, SelectedEntry{ID: string(w.ID), Spelling: w.Spelling, Status: status})
	}
	return view
}

func (o *Output) printLevel(l LevelView) {
	title := fmt.Sprintf("Level %d", l.Level)
	switch {
	case l.Challenge:
		title += " (challenge)"
	case l.Theme != "":
		title += fmt.Sprintf(" (theme: %s)", l.Theme)
	}
	headingStyle.Fprintln(o.w, title)
	fmt.Fprintf(o.w, "Layout: %s (%dx%d)\n", l.Layout.ID, l.Layout.Rows, l.Layout.Cols)
	fmt.Fprintf(o.w, "Words (%d of %d): %s\n", len(l.Words), l.DesiredCount, strings.Join(l.Words, ", "))
	if l.Rounds > 1 {
		fmt.Fprintf(o.w, "Rounds: %d\n", l.Rounds)
	}
	fmt.Fprintln(o.w)

	o.printGrid(l.Layout)

	letters := []rune(l.Layout.Letters)
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}
	fmt.Fprintf(o.w, "\nLetters: %s\n", strings.Join(parts, " "))
}

func (o *Output) printGrid(layout LayoutView) {
	if len(layout.Grid) == 0 {
		return
	}

	crossPoints := make(map[PositionView]bool, len(layout.CrossPoints))
	for _, p := range layout.CrossPoints {
		crossPoints[p] = true
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < layout.Cols; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("---", layout.Cols) + "+"
	fmt.Fprintln(o.w, border)

	for row, line := range layout.Grid {
		fmt.Fprintf(o.w, "%2d |", row)
		var solved []rune
		if len(layout.Solution) > row {
			solved = []rune(layout.Solution[row])
		}
		for col, r := range []rune(line) {
			switch {
			case r == symbolEmpty:
				fmt.Fprintf(o.w, " %c ", symbolEmpty)
			case r == symbolBlank && solved != nil:
				fmt.Fprintf(o.w, " %s ", solutionStyle.Sprint(string(solved[col])))
			case r == symbolBlank:
				fmt.Fprintf(o.w, " %s ", blankStyle.Sprint(string(symbolBlank)))
			case crossPoints[PositionView{Row: row, Col: col}]:
				fmt.Fprintf(o.w, " %s ", crossPointStyle.Sprint(strings.ToUpper(string(r))))
			default:
				fmt.Fprintf(o.w, " %s ", preFilledStyle.Sprint(strings.ToUpper(string(r))))
			}
		}
		fmt.Fprintln(o.w, "|")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printSelection(s SelectionView) {
	title := fmt.Sprintf("Selected %d of %d words", len(s.Words), s.Desired)
	if s.Theme != "" {
		title += fmt.Sprintf(" (theme: %s)", s.Theme)
	}
	headingStyle.Fprintln(o.w, title)
	for _, w := range s.Words {
		fmt.Fprintf(o.w, "  - %s (%s)\n", w.Spelling, w.Status)
	}
}

func (o *Output) printPlans(plans []PlanView) {
	for _, p := range plans {
		kind := "unthemed"
		switch {
		case p.Challenge:
			kind = "challenge"
		case p.Theme != "":
			kind = "theme: " + p.Theme
		}
		fmt.Fprintf(o.w, "Level %3d  %d words  pre-fill %.0f%%  %s\n", p.Level, p.Words, p.PreFillRatio*100, kind)
	}
}
