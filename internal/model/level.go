package model

// Theme is a named subset of the vocabulary
type Theme struct {
	ID        string
	Name      string
	MemberIDs []VocabID
}

// Contains returns true if the id is a member of the theme
func (t *Theme) Contains(id VocabID) bool {
	for _, member := range t.MemberIDs {
		if member == id {
			return true
		}
	}
	return false
}

// LevelPlan describes which word pool a level draws from
type LevelPlan struct {
	Level      int
	Challenge  bool // every 5th level draws from the full vocabulary
	ThemeIndex int  // -1 when the level is unthemed
}

// IsThemed returns true if the level draws from a theme
func (p LevelPlan) IsThemed() bool {
	return !p.Challenge && p.ThemeIndex >= 0
}

// Selection is the set of words chosen for a level
type Selection struct {
	Words     []VocabEntry
	HasReview bool
}

// IDs returns the ids of the selected words in order
func (s Selection) IDs() []VocabID {
	ids := make([]VocabID, len(s.Words))
	for i, w := range s.Words {
		ids[i] = w.ID
	}
	return ids
}
