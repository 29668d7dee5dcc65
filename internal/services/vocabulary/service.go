package vocabulary

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/mcoot/vocabgrid/internal/model"
)

// MinSpellingLength is the shortest word accepted into the vocabulary
const MinSpellingLength = 3

// Service holds the vocabulary entries levels are built from
type Service struct {
	logger *slog.Logger

	mu      sync.RWMutex
	entries []model.VocabEntry
	byID    map[model.VocabID]int
	loaded  bool
}

// New creates a new vocabulary Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "vocabulary")),
		byID:   make(map[model.VocabID]int),
	}
}

// LoadFromFile loads entries from a file, one per line.
// Lines are either "spelling" (the spelling is the id) or "id,spelling".
// Blank lines and lines starting with # are ignored.
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.LoadFromReader(file)
}

// LoadFromReader loads entries in the LoadFromFile format
func (s *Service) LoadFromReader(r io.Reader) error {
	var entries []model.VocabEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, spelling, found := strings.Cut(line, ",")
		if !found {
			spelling = id
		}
		entries = append(entries, model.VocabEntry{
			ID:       model.VocabID(strings.TrimSpace(id)),
			Spelling: spelling,
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return s.LoadEntries(entries)
}

// LoadWords loads bare spellings, using each spelling as its id
func (s *Service) LoadWords(words []string) error {
	entries := make([]model.VocabEntry, len(words))
	for i, w := range words {
		entries[i] = model.VocabEntry{ID: model.VocabID(strings.ToLower(strings.TrimSpace(w))), Spelling: w}
	}
	return s.LoadEntries(entries)
}

// LoadEntries replaces the vocabulary. Spellings are lowercased; entries that
// are too short, contain non-letters or repeat an earlier id are skipped.
func (s *Service) LoadEntries(entries []model.VocabEntry) error {
	accepted := make([]model.VocabEntry, 0, len(entries))
	byID := make(map[model.VocabID]int, len(entries))
	skipped := 0

	for _, e := range entries {
		spelling := strings.ToLower(strings.TrimSpace(e.Spelling))
		if e.ID == "" || !IsValidSpelling(spelling) {
			skipped++
			continue
		}
		if _, ok := byID[e.ID]; ok {
			skipped++
			continue
		}
		byID[e.ID] = len(accepted)
		accepted = append(accepted, model.VocabEntry{ID: e.ID, Spelling: spelling})
	}

	if skipped > 0 {
		s.logger.Debug("skipped vocabulary entries", slog.Int("count", skipped))
	}
	if len(accepted) == 0 {
		return fmt.Errorf("%w: no valid entries", model.ErrVocabularyNotLoaded)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = accepted
	s.byID = byID
	s.loaded = true

	s.logger.Info("vocabulary loaded", slog.Int("entries", len(accepted)))
	return nil
}

// IsValidSpelling returns true for lowercase-able letter-only words of at
// least MinSpellingLength letters
func IsValidSpelling(spelling string) bool {
	if len([]rune(spelling)) < MinSpellingLength {
		return false
	}
	for _, c := range spelling {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}

// IsLoaded returns whether a vocabulary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of entries
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of all entries in load order
func (s *Service) Entries() []model.VocabEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.VocabEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Lookup returns the entry with the given id
func (s *Service) Lookup(id model.VocabID) (model.VocabEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return model.VocabEntry{}, false
	}
	return s.entries[idx], true
}

// Filter returns the entries for the given ids, skipping unknown ids
func (s *Service) Filter(ids []model.VocabID) []model.VocabEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.VocabEntry
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			result = append(result, s.entries[idx])
		}
	}
	return result
}

// ServiceInterface is the read side used by level generation
type ServiceInterface interface {
	IsLoaded() bool
	WordCount() int
	Entries() []model.VocabEntry
	Lookup(id model.VocabID) (model.VocabEntry, bool)
	Filter(ids []model.VocabID) []model.VocabEntry
}

var _ ServiceInterface = (*Service)(nil)
