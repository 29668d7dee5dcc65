package generator

import (
	"unicode"

	"github.com/mcoot/vocabgrid/internal/model"
)

// Validation helpers are pure: they never modify the layout or the placements.
// placements maps a cell position to the letter the player put there.

// ValidateWord returns true if every cell of the word holds its expected letter.
// Pre-filled cells are checked against their fixed letter, all others against placements.
func ValidateWord(layout *model.PuzzleLayout, word model.PuzzleWord, placements map[model.Position]rune) bool {
	letters := []rune(word.Spelling)
	if len(letters) != len(word.Cells) {
		return false
	}
	for i, pos := range word.Cells {
		cell := layout.CellAt(pos)
		if cell == nil {
			return false
		}
		if cell.IsPreFilled {
			if cell.Letter != letters[i] {
				return false
			}
			continue
		}
		placed, ok := placements[pos]
		if !ok || unicode.ToLower(placed) != letters[i] {
			return false
		}
	}
	return true
}

// IsWordComplete returns true if every non-pre-filled cell of the word has a
// placement, whether or not it is correct.
func IsWordComplete(layout *model.PuzzleLayout, word model.PuzzleWord, placements map[model.Position]rune) bool {
	for _, pos := range word.Cells {
		cell := layout.CellAt(pos)
		if cell == nil {
			return false
		}
		if cell.IsPreFilled {
			continue
		}
		if _, ok := placements[pos]; !ok {
			return false
		}
	}
	return true
}

// IsPuzzleComplete returns true if every word is complete
func IsPuzzleComplete(layout *model.PuzzleLayout, placements map[model.Position]rune) bool {
	for _, word := range layout.Words {
		if !IsWordComplete(layout, word, placements) {
			return false
		}
	}
	return true
}

// ValidatePuzzle is the win condition: every word is correctly filled
func ValidatePuzzle(layout *model.PuzzleLayout, placements map[model.Position]rune) bool {
	if len(layout.Words) == 0 {
		return false
	}
	for _, word := range layout.Words {
		if !ValidateWord(layout, word, placements) {
			return false
		}
	}
	return true
}

// Solution returns the expected letter for every non-pre-filled cell
func Solution(layout *model.PuzzleLayout) map[model.Position]rune {
	result := make(map[model.Position]rune)
	for _, word := range layout.Words {
		letters := []rune(word.Spelling)
		for i, pos := range word.Cells {
			cell := layout.CellAt(pos)
			if cell == nil || cell.IsPreFilled {
				continue
			}
			result[pos] = letters[i]
		}
	}
	return result
}
