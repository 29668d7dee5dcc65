package selector

import "strings"

// HighFrequencyLetters are letters that make a word easy to cross
const HighFrequencyLetters = "aeiorstnl"

// Scorer ranks how likely a word is to share letters with other words.
// Higher scores are preferred.
type Scorer interface {
	Score(spelling string) int
}

// CrossabilityScorer counts distinct letters, with a bonus of 2 for each
// distinct letter in HighFrequencyLetters.
type CrossabilityScorer struct{}

// Score returns the crossability score of a spelling
func (CrossabilityScorer) Score(spelling string) int {
	seen := make(map[rune]struct{})
	score := 0
	for _, c := range strings.ToLower(spelling) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		score++
		if strings.ContainsRune(HighFrequencyLetters, c) {
			score += 2
		}
	}
	return score
}

// ScorerFunc adapts a function to the Scorer interface
type ScorerFunc func(spelling string) int

// Score calls f
func (f ScorerFunc) Score(spelling string) int {
	return f(spelling)
}
