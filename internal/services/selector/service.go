package selector

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/mcoot/vocabgrid/internal/dependencies/random"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/intersection"
)

// PoolMultiplier sets how many top-ranked new words are sampled from,
// as a multiple of the desired count
const PoolMultiplier = 3

// Options tweak candidate ordering
type Options struct {
	// ShorterFirst tries shorter words before longer ones instead of drawing at random
	ShorterFirst bool
}

// Service picks which vocabulary entries enter a level
type Service struct {
	random random.Random
	scorer Scorer
	logger *slog.Logger
}

// New creates a new selector Service. A nil scorer uses CrossabilityScorer.
func New(rnd random.Random, scorer Scorer, logger *slog.Logger) *Service {
	if scorer == nil {
		scorer = CrossabilityScorer{}
	}
	return &Service{
		random: rnd,
		scorer: scorer,
		logger: logger.With(slog.String("component", "selector")),
	}
}

// WithRandom returns a copy of the service drawing from rnd
func (s *Service) WithRandom(rnd random.Random) *Service {
	clone := *s
	clone.random = rnd
	return &clone
}

// SelectWordsForLevel chooses up to desiredCount words, prioritising one review
// word, then new words, then learned words, then remaining review words. Each of
// those picks must share a letter with a word already chosen. If that still
// leaves the level short, any unused word is taken regardless of crossability.
// Fewer than desiredCount words are returned only when allWords runs out.
func (s *Service) SelectWordsForLevel(allWords []model.VocabEntry, state model.LearningState, desiredCount int) model.Selection {
	return s.Select(allWords, state, desiredCount, Options{})
}

// Select is SelectWordsForLevel with ordering options
func (s *Service) Select(allWords []model.VocabEntry, state model.LearningState, desiredCount int, opts Options) model.Selection {
	if len(allWords) == 0 || desiredCount <= 0 {
		return model.Selection{}
	}

	b := &builder{
		service: s,
		opts:    opts,
		desired: desiredCount,
		used:    make(map[model.VocabID]struct{}, desiredCount),
	}

	var review, fresh, learned []model.VocabEntry
	for _, e := range allWords {
		switch {
		case state.IsLearned(e.ID):
			learned = append(learned, e)
		case state.IsReview(e.ID):
			review = append(review, e)
		default:
			fresh = append(fresh, e)
		}
	}

	// 1. exactly one review word
	if b.fill(review, true, 1) > 0 {
		b.selection.HasReview = true
	}

	// 2. new words, sampled from the best ranked
	ranked := s.rank(fresh, opts)
	window := ranked[:min(len(ranked), PoolMultiplier*desiredCount)]
	b.fill(window, true, desiredCount)
	b.fill(ranked, true, desiredCount)

	// 3. learned words
	b.fill(learned, true, desiredCount)

	// 4. any remaining review words
	b.fill(review, true, desiredCount)

	// 5. anything left, crossable or not
	if short := b.fill(allWords, false, desiredCount); short > 0 {
		s.logger.Debug("selection fell back to non-crossable words", slog.Int("count", short))
	}

	if len(b.selection.Words) < desiredCount {
		s.logger.Debug("selection shortfall",
			slog.Int("desired", desiredCount),
			slog.Int("selected", len(b.selection.Words)),
		)
	}
	return b.selection
}

// rank orders new words by crossability score, best first. With ShorterFirst
// length is the primary key.
func (s *Service) rank(entries []model.VocabEntry, opts Options) []model.VocabEntry {
	ranked := slices.Clone(entries)
	scores := make(map[model.VocabID]int, len(ranked))
	for _, e := range ranked {
		scores[e.ID] = s.scorer.Score(e.Spelling)
	}
	slices.SortStableFunc(ranked, func(a, b model.VocabEntry) int {
		if opts.ShorterFirst {
			if c := cmp.Compare(len(a.Spelling), len(b.Spelling)); c != 0 {
				return c
			}
		}
		return cmp.Compare(scores[b.ID], scores[a.ID])
	})
	return ranked
}

// builder accumulates a selection across the priority steps
type builder struct {
	service   *Service
	opts      Options
	desired   int
	used      map[model.VocabID]struct{}
	selection model.Selection
}

// fill adds words from pool until the selection reaches limit (or the desired
// count) and returns how many were added.
func (b *builder) fill(pool []model.VocabEntry, requireCrossable bool, limit int) int {
	added := 0
	for len(b.selection.Words) < b.desired && added < limit {
		var candidates []model.VocabEntry
		for _, e := range pool {
			if _, ok := b.used[e.ID]; ok {
				continue
			}
			if requireCrossable && !b.crossable(e) {
				continue
			}
			candidates = append(candidates, e)
		}
		if len(candidates) == 0 {
			break
		}

		chosen := b.pick(candidates)
		b.used[chosen.ID] = struct{}{}
		b.selection.Words = append(b.selection.Words, chosen)
		added++
	}
	return added
}

// crossable returns true if e shares a letter with a chosen word.
// The first pick is always crossable.
func (b *builder) crossable(e model.VocabEntry) bool {
	if len(b.selection.Words) == 0 {
		return true
	}
	for _, chosen := range b.selection.Words {
		if intersection.SharesLetter(chosen.Spelling, e.Spelling) {
			return true
		}
	}
	return false
}

// pick draws a random candidate, or a random one of the shortest with ShorterFirst
func (b *builder) pick(candidates []model.VocabEntry) model.VocabEntry {
	if b.opts.ShorterFirst {
		shortest := len(candidates[0].Spelling)
		for _, c := range candidates[1:] {
			shortest = min(shortest, len(c.Spelling))
		}
		var tied []model.VocabEntry
		for _, c := range candidates {
			if len(c.Spelling) == shortest {
				tied = append(tied, c)
			}
		}
		candidates = tied
	}
	return random.Pick(b.service.random, candidates)
}
