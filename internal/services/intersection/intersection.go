// Package intersection holds the letter-matching and placement primitives
// the puzzle generator builds layouts from.
package intersection

import (
	"strings"

	"github.com/mcoot/vocabgrid/internal/model"
)

// Intersection is a letter shared by two words
type Intersection struct {
	Letter rune
	IndexA int // letter index in the first word
	IndexB int // letter index in the second word
}

// FindIntersections returns every (letter, indexA, indexB) triple where both
// words hold the same letter. Matching is case-insensitive.
func FindIntersections(wordA, wordB string) []Intersection {
	a := []rune(strings.ToLower(wordA))
	b := []rune(strings.ToLower(wordB))

	var result []Intersection
	for i, ca := range a {
		for j, cb := range b {
			if ca == cb {
				result = append(result, Intersection{Letter: ca, IndexA: i, IndexB: j})
			}
		}
	}
	return result
}

// SharesLetter returns true if the words have at least one letter in common
func SharesLetter(wordA, wordB string) bool {
	b := strings.ToLower(wordB)
	for _, c := range strings.ToLower(wordA) {
		if strings.ContainsRune(b, c) {
			return true
		}
	}
	return false
}

// Positions returns the cells a word occupies when started at start in dir
func Positions(word string, start model.Position, dir model.Direction) []model.Position {
	dRow, dCol := dir.Delta()
	letters := []rune(word)
	result := make([]model.Position, len(letters))
	for i := range letters {
		result[i] = start.Offset(dRow*i, dCol*i)
	}
	return result
}

// CanPlace reports whether word fits at start in dir without leaving bounds
// or overwriting a different letter. Matching letters are allowed, which is
// how words cross.
func CanPlace(grid *Grid, word string, start model.Position, dir model.Direction, bounds Bounds) bool {
	letters := []rune(strings.ToLower(word))
	for i, pos := range Positions(word, start, dir) {
		if !bounds.Contains(pos) {
			return false
		}
		if !grid.IsEmpty(pos) && grid.Get(pos) != letters[i] {
			return false
		}
	}
	return true
}

// Place writes the word's letters to the grid. Repeating the same call is a no-op.
func Place(grid *Grid, word string, start model.Position, dir model.Direction) []model.Position {
	letters := []rune(strings.ToLower(word))
	positions := Positions(word, start, dir)
	for i, pos := range positions {
		grid.Set(pos, letters[i])
	}
	return positions
}

// StartForIntersection returns where a word must start so that its letter at
// index lands on target, running in dir.
func StartForIntersection(target model.Position, index int, dir model.Direction) model.Position {
	dRow, dCol := dir.Delta()
	return target.Offset(-dRow*index, -dCol*index)
}
