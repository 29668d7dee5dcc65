package generator

import (
	"math"
	"slices"

	"github.com/mcoot/vocabgrid/internal/dependencies/random"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/intersection"
)

// buildLayout crops the scratch grid to its bounding box, rebuilds cells and
// words relative to it, then applies the pre-fill policy.
func (s *Service) buildLayout(entries []model.VocabEntry, grid *intersection.Grid, placements map[model.VocabID]placement, preFillRatio float64) *model.PuzzleLayout {
	bounds, _ := grid.BoundingBox()
	size := model.GridSize{Rows: bounds.Rows(), Cols: bounds.Cols()}

	cells := make([][]model.Cell, size.Rows)
	for row := range cells {
		cells[row] = make([]model.Cell, size.Cols)
		for col := range cells[row] {
			pos := model.Position{Row: row, Col: col}
			cells[row][col] = model.Cell{ID: model.CellID(pos), Position: pos}
		}
	}

	// Words keep the caller's order
	words := make([]model.PuzzleWord, 0, len(entries))
	for _, e := range entries {
		p := placements[e.ID]
		letters := []rune(e.Spelling)
		shifted := make([]model.Position, len(p.cells))
		for i, pos := range p.cells {
			local := pos.Offset(-bounds.MinRow, -bounds.MinCol)
			shifted[i] = local
			cell := &cells[local.Row][local.Col]
			cell.Letter = letters[i]
			cell.OwningWordIDs = append(cell.OwningWordIDs, e.ID)
		}
		words = append(words, model.PuzzleWord{
			ID:        e.ID,
			Spelling:  e.Spelling,
			Direction: p.direction,
			Start:     shifted[0],
			Cells:     shifted,
		})
	}

	layout := &model.PuzzleLayout{
		ID:    s.random.String(LayoutIDLength, LayoutIDAlphabet),
		Grid:  cells,
		Words: words,
		Size:  size,
	}
	s.applyPreFill(layout, preFillRatio)
	layout.AllLetters = collectLetters(layout)
	return layout
}

// applyPreFill forces every cross-point to be pre-filled, then pre-fills random
// further cells until floor(letterCells * ratio) cells are pre-filled in total.
func (s *Service) applyPreFill(layout *model.PuzzleLayout, ratio float64) {
	ratio = clampRatio(ratio)

	var candidates []model.Position
	preFilled := 0
	total := 0
	for row := range layout.Grid {
		for col := range layout.Grid[row] {
			cell := &layout.Grid[row][col]
			if cell.IsEmpty() {
				continue
			}
			total++
			if len(cell.OwningWordIDs) > 1 {
				cell.IsCrossPoint = true
				cell.IsPreFilled = true
				preFilled++
				continue
			}
			candidates = append(candidates, cell.Position)
		}
	}

	quota := int(math.Floor(float64(total) * ratio))
	random.Shuffle(s.random, candidates)
	for _, pos := range candidates {
		if preFilled >= quota {
			break
		}
		layout.Grid[pos.Row][pos.Col].IsPreFilled = true
		preFilled++
	}
}

// collectLetters returns the sorted letters of every cell the player must fill
func collectLetters(layout *model.PuzzleLayout) []rune {
	letters := []rune{}
	for _, row := range layout.Grid {
		for _, cell := range row {
			if !cell.IsEmpty() && !cell.IsPreFilled {
				letters = append(letters, cell.Letter)
			}
		}
	}
	slices.Sort(letters)
	return letters
}

func clampRatio(ratio float64) float64 {
	switch {
	case math.IsNaN(ratio) || ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}
