package generator

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/mcoot/vocabgrid/internal/dependencies/random"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/intersection"
)

const (
	// DefaultMaxRetries is the number of full attempts before giving up
	DefaultMaxRetries = 50
	// LayoutIDAlphabet is the character set for generated layout IDs
	LayoutIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// LayoutIDLength is the length of generated layout IDs
	LayoutIDLength = 12
)

// Config holds generator settings
type Config struct {
	MaxRetries int
}

// DefaultConfig returns the default generator configuration
func DefaultConfig() Config {
	return Config{MaxRetries: DefaultMaxRetries}
}

// Service places a set of words into one connected crossword grid
type Service struct {
	random random.Random
	cfg    Config
	logger *slog.Logger
}

// New creates a new generator Service
func New(rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &Service{
		random: rnd,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "generator")),
	}
}

// WithRandom returns a copy of the service drawing from rnd
func (s *Service) WithRandom(rnd random.Random) *Service {
	clone := *s
	clone.random = rnd
	return &clone
}

// MaxRetries returns the configured attempt budget
func (s *Service) MaxRetries() int {
	return s.cfg.MaxRetries
}

// Generate builds a layout for words using the configured retry budget.
// preFillRatio is clamped to [0, 1].
func (s *Service) Generate(words []model.VocabEntry, preFillRatio float64) (*model.PuzzleLayout, error) {
	return s.GenerateWithRetries(words, preFillRatio, s.cfg.MaxRetries)
}

// GenerateWithRetries builds a layout for words, making up to maxRetries full
// attempts. Either every (deduplicated) word is placed or a
// *model.GenerationExhaustedError is returned; partial layouts are never returned.
func (s *Service) GenerateWithRetries(words []model.VocabEntry, preFillRatio float64, maxRetries int) (*model.PuzzleLayout, error) {
	entries := normalizeEntries(words)
	if len(entries) == 0 {
		return nil, model.ErrInvalidInput
	}
	if maxRetries <= 0 {
		maxRetries = s.cfg.MaxRetries
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		grid, placements, err := s.attempt(entries)
		if err != nil {
			s.logger.Debug("generation attempt failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			continue
		}

		layout := s.buildLayout(entries, grid, placements, preFillRatio)
		s.logger.Debug("generated layout",
			slog.String("layout_id", layout.ID),
			slog.Int("attempt", attempt),
			slog.Int("words", len(layout.Words)),
			slog.Int("rows", layout.Size.Rows),
			slog.Int("cols", layout.Size.Cols),
		)
		return layout, nil
	}

	spellings := make([]string, len(entries))
	for i, e := range entries {
		spellings[i] = e.Spelling
	}
	s.logger.Warn("generation exhausted",
		slog.Int("attempts", maxRetries),
		slog.Any("words", spellings),
	)
	return nil, &model.GenerationExhaustedError{Attempts: maxRetries, Words: spellings}
}

// placement records where a word ended up on the scratch grid
type placement struct {
	entry     model.VocabEntry
	direction model.Direction
	start     model.Position
	cells     []model.Position
}

// attempt makes one full placement pass over the words
func (s *Service) attempt(entries []model.VocabEntry) (*intersection.Grid, map[model.VocabID]placement, error) {
	grid := intersection.NewGrid()
	placements := make(map[model.VocabID]placement, len(entries))

	// Single word: horizontal at the origin
	if len(entries) == 1 {
		e := entries[0]
		cells := intersection.Place(grid, e.Spelling, model.Position{}, model.Horizontal)
		placements[e.ID] = placement{entry: e, direction: model.Horizontal, cells: cells}
		return grid, placements, nil
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.VocabEntry) int {
		return cmp.Compare(wordLen(b.Spelling), wordLen(a.Spelling))
	})

	maxLen := wordLen(sorted[0].Spelling)
	side := 2*maxLen + 2
	bounds := intersection.SquareBounds(side)

	first := sorted[0]
	start := model.Position{Row: side / 2, Col: (side - maxLen) / 2}
	cells := intersection.Place(grid, first.Spelling, start, model.Horizontal)
	placed := []placement{{entry: first, direction: model.Horizontal, start: start, cells: cells}}

	for _, e := range sorted[1:] {
		p, ok := s.placeAgainst(grid, placed, e, bounds)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", model.ErrPlacementInfeasible, e.Spelling)
		}
		placed = append(placed, p)
	}

	for _, p := range placed {
		placements[p.entry.ID] = p
	}
	return grid, placements, nil
}

// placeAgainst tries every intersection with already placed words, in shuffled
// order, and places the word at the first one that fits.
func (s *Service) placeAgainst(grid *intersection.Grid, placed []placement, e model.VocabEntry, bounds intersection.Bounds) (placement, bool) {
	order := slices.Clone(placed)
	random.Shuffle(s.random, order)

	// Cells already covered by a word running each way
	covered := map[model.Direction]map[model.Position]struct{}{
		model.Horizontal: {},
		model.Vertical:   {},
	}
	for _, p := range placed {
		for _, pos := range p.cells {
			covered[p.direction][pos] = struct{}{}
		}
	}

	for _, target := range order {
		candidates := intersection.FindIntersections(target.entry.Spelling, e.Spelling)
		random.Shuffle(s.random, candidates)

		dir := target.direction.Perpendicular()
		for _, c := range candidates {
			start := intersection.StartForIntersection(target.cells[c.IndexA], c.IndexB, dir)
			if !intersection.CanPlace(grid, e.Spelling, start, dir, bounds) {
				continue
			}
			if !keepsOwnCell(intersection.Positions(e.Spelling, start, dir), covered[dir], grid) {
				continue
			}
			cells := intersection.Place(grid, e.Spelling, start, dir)
			return placement{entry: e, direction: dir, start: start, cells: cells}, true
		}
	}
	return placement{}, false
}

// keepsOwnCell reports whether a placement stays clear of every word running
// the same way and still writes at least one fresh cell.
func keepsOwnCell(cells []model.Position, sameDirection map[model.Position]struct{}, grid *intersection.Grid) bool {
	fresh := false
	for _, pos := range cells {
		if _, ok := sameDirection[pos]; ok {
			return false
		}
		if grid.IsEmpty(pos) {
			fresh = true
		}
	}
	return fresh
}

// normalizeEntries lowercases spellings and drops invalid or duplicate entries.
// A spelling is valid if it is non-empty and made only of letters.
func normalizeEntries(words []model.VocabEntry) []model.VocabEntry {
	seenSpelling := make(map[string]struct{}, len(words))
	seenID := make(map[model.VocabID]struct{}, len(words))

	var result []model.VocabEntry
	for _, w := range words {
		spelling := strings.ToLower(strings.TrimSpace(w.Spelling))
		if !isValidSpelling(spelling) {
			continue
		}
		if _, ok := seenSpelling[spelling]; ok {
			continue
		}
		if _, ok := seenID[w.ID]; ok {
			continue
		}
		seenSpelling[spelling] = struct{}{}
		seenID[w.ID] = struct{}{}
		result = append(result, model.VocabEntry{ID: w.ID, Spelling: spelling})
	}
	return result
}

func isValidSpelling(spelling string) bool {
	if spelling == "" {
		return false
	}
	for _, c := range spelling {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}

func wordLen(s string) int {
	return len([]rune(s))
}

// IsExhausted returns true if err means every generation attempt failed
func IsExhausted(err error) bool {
	return errors.Is(err, model.ErrGenerationExhausted)
}
