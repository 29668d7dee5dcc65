package model

// VocabID uniquely identifies a vocabulary entry
type VocabID string

// VocabEntry is a single word from the caller's vocabulary
type VocabEntry struct {
	ID       VocabID
	Spelling string // lowercase, at least 3 letters by convention
}

// LearningState holds the caller's learning progress as two id sets
type LearningState struct {
	Learned map[VocabID]struct{}
	Review  map[VocabID]struct{} // hint-revealed, not yet re-mastered
}

// NewLearningState builds a LearningState from id lists.
// An id present in learned is never kept in review.
func NewLearningState(learned, review []VocabID) LearningState {
	state := LearningState{
		Learned: make(map[VocabID]struct{}, len(learned)),
		Review:  make(map[VocabID]struct{}, len(review)),
	}
	for _, id := range learned {
		state.Learned[id] = struct{}{}
	}
	for _, id := range review {
		if _, ok := state.Learned[id]; ok {
			continue
		}
		state.Review[id] = struct{}{}
	}
	return state
}

// IsLearned returns true if the id is in the learned set
func (s LearningState) IsLearned(id VocabID) bool {
	_, ok := s.Learned[id]
	return ok
}

// IsReview returns true if the id is in the review set
func (s LearningState) IsReview(id VocabID) bool {
	_, ok := s.Review[id]
	return ok
}

// IsNew returns true if the id is in neither set
func (s LearningState) IsNew(id VocabID) bool {
	return !s.IsLearned(id) && !s.IsReview(id)
}

// Clone returns an independent copy of the state
func (s LearningState) Clone() LearningState {
	clone := LearningState{
		Learned: make(map[VocabID]struct{}, len(s.Learned)),
		Review:  make(map[VocabID]struct{}, len(s.Review)),
	}
	for id := range s.Learned {
		clone.Learned[id] = struct{}{}
	}
	for id := range s.Review {
		clone.Review[id] = struct{}{}
	}
	return clone
}

// MarkLearned moves an id into the learned set.
// Only call this on a state you own (see Clone).
func (s *LearningState) MarkLearned(id VocabID) {
	if s.Learned == nil {
		s.Learned = make(map[VocabID]struct{})
	}
	s.Learned[id] = struct{}{}
	delete(s.Review, id)
}
