package level

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabgrid/internal/dependencies/mocks"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/selector"
	"github.com/mcoot/vocabgrid/internal/services/theme"
	"github.com/mcoot/vocabgrid/internal/testutil"
)

type fixedDifficulty struct {
	words int
	ratio float64
	bonus int
}

func (d fixedDifficulty) DesiredWordCount(int) int { return d.words }
func (d fixedDifficulty) PreFillRatio(int) float64 { return d.ratio }
func (d fixedDifficulty) ChallengeBonusWords() int { return d.bonus }

type ControllerSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	difficulty fixedDifficulty
	cfg        Config
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.difficulty = fixedDifficulty{words: 3, ratio: 0.25, bonus: 1}
	s.cfg = DefaultConfig()
	s.cfg.FallbackMaxRetries = 3
	s.rebuild()
}

func (s *ControllerSuite) rebuild() {
	logger := testutil.NopLogger()
	gen := generator.New(s.random, generator.Config{MaxRetries: 2}, logger)
	sel := selector.New(s.random, nil, logger)
	s.controller = NewController(gen, sel, theme.New(sel, logger), s.difficulty, SeededRandomFactory(11), s.clock, s.cfg, logger)
}

func vocab(spellings ...string) []model.VocabEntry {
	result := make([]model.VocabEntry, len(spellings))
	for i, sp := range spellings {
		result[i] = model.VocabEntry{ID: model.VocabID(sp), Spelling: sp}
	}
	return result
}

// GenerateLevel tests

func (s *ControllerSuite) TestGenerateLevelSucceeds() {
	s.random.QueueString("layout000001")

	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: vocab("cat", "car", "tar", "art"),
		State:      model.NewLearningState(nil, nil),
	})
	s.Require().NoError(err)

	s.Equal(1, result.Plan.Level)
	s.False(result.Plan.Challenge)
	s.Nil(result.Theme)
	s.Equal(3, result.DesiredCount)
	s.Equal(1, result.Rounds)
	s.Len(result.Selection.Words, 3)
	s.Require().NotNil(result.Layout)
	s.Equal("layout000001", result.Layout.ID)
	s.Len(result.Layout.Words, 3)
	s.Equal(s.clock.Now(), result.GeneratedAt)
	s.True(generator.ValidatePuzzle(result.Layout, generator.Solution(result.Layout)))
}

func (s *ControllerSuite) TestGenerateLevelRecordsDuration() {
	s.clock.SetStep(time.Second)

	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: vocab("cat", "car", "tar"),
		State:      model.NewLearningState(nil, nil),
	})
	s.Require().NoError(err)

	// One tick for the start stamp and one for GeneratedAt
	s.Equal(2*time.Second, result.Duration)
	s.Equal(time.Date(2024, 1, 1, 12, 0, 1, 0, time.UTC), result.GeneratedAt)
}

func (s *ControllerSuite) TestChallengeLevelAddsBonusWords() {
	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      5,
		Vocabulary: vocab("cat", "car", "tar", "art", "rat"),
		State:      model.NewLearningState(nil, nil),
		Themes:     []model.Theme{{ID: "t", MemberIDs: []model.VocabID{"cat"}}},
	})
	s.Require().NoError(err)

	s.True(result.Plan.Challenge)
	s.Nil(result.Theme)
	s.Equal(4, result.DesiredCount)
	s.Len(result.Selection.Words, 4)
}

func (s *ControllerSuite) TestThemedLevelUsesThemeWords() {
	themes := []model.Theme{
		{ID: "first", MemberIDs: []model.VocabID{"dog", "god"}},
		{ID: "second", MemberIDs: []model.VocabID{"cat", "tar", "art"}},
	}

	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      2,
		Vocabulary: vocab("dog", "god", "cat", "tar", "art", "rat"),
		State:      model.NewLearningState(nil, nil),
		Themes:     themes,
	})
	s.Require().NoError(err)

	s.Require().NotNil(result.Theme)
	s.Equal("second", result.Theme.ID)
	s.ElementsMatch([]model.VocabID{"cat", "tar", "art"}, result.Selection.IDs())
}

func (s *ControllerSuite) TestEmptyThemeFallsBackToVocabulary() {
	themes := []model.Theme{{ID: "ghost", MemberIDs: []model.VocabID{"missing"}}}

	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: vocab("cat", "car", "tar"),
		State:      model.NewLearningState(nil, nil),
		Themes:     themes,
	})
	s.Require().NoError(err)

	s.Equal("ghost", result.Theme.ID)
	s.Len(result.Selection.Words, 3)
}

func (s *ControllerSuite) TestEmptyVocabularyFailsFast() {
	_, err := s.controller.GenerateLevel(LevelRequest{Level: 1})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ControllerSuite) TestShrinksWordCountAfterRetries() {
	s.difficulty.words = 4
	s.rebuild()

	// dog and hum never cross cat or tar, so every 4-word selection fails
	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: vocab("cat", "tar", "dog", "hum"),
		State:      model.NewLearningState(nil, nil),
	})
	s.Require().NoError(err)

	s.Equal(4, result.DesiredCount)
	s.Equal(s.cfg.SelectionRetries+2, result.Rounds)
	s.Equal([]model.VocabID{"tar", "cat"}, result.Selection.IDs())
	s.Len(result.Layout.Words, 2)
}

func (s *ControllerSuite) TestFailsWhenNothingCrosses() {
	state := model.NewLearningState(nil, []model.VocabID{"dog"})
	before := state.Clone()

	_, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: vocab("cat", "dog", "fix", "hum"),
		State:      state,
	})

	s.ErrorIs(err, model.ErrLevelGenerationFailed)
	s.ErrorIs(err, model.ErrGenerationExhausted)

	var exhausted *model.GenerationExhaustedError
	s.Require().True(errors.As(err, &exhausted))
	s.Equal(s.cfg.FallbackMaxRetries, exhausted.Attempts)

	s.Equal(before, state, "caller state must not change")
}

func (s *ControllerSuite) TestDemotionCandidateSkipsReviewWords() {
	sel := model.Selection{Words: vocab("cat", "tar", "art")}
	state := model.NewLearningState(nil, []model.VocabID{"art"})

	s.Equal(model.VocabID("tar"), demotionCandidate(sel, state))

	state = model.NewLearningState(nil, []model.VocabID{"cat", "tar", "art"})
	s.Equal(model.VocabID("art"), demotionCandidate(sel, state))
}

func (s *ControllerSuite) TestDemotionCandidatePrefersNewWords() {
	sel := model.Selection{Words: vocab("cat", "tar", "art")}

	// art is already learned, so demoting it would not change the next selection
	state := model.NewLearningState([]model.VocabID{"art"}, nil)
	s.Equal(model.VocabID("tar"), demotionCandidate(sel, state))

	state = model.NewLearningState([]model.VocabID{"cat", "art"}, []model.VocabID{"tar"})
	s.Equal(model.VocabID("art"), demotionCandidate(sel, state))
}

func (s *ControllerSuite) TestSelectionOnlyListsPlacedWords() {
	words := []model.VocabEntry{
		{ID: "cat-animal", Spelling: "cat"},
		{ID: "cat-unix", Spelling: "cat"},
		{ID: "tar", Spelling: "tar"},
	}
	state := model.NewLearningState(nil, []model.VocabID{"cat-unix"})

	result, err := s.controller.GenerateLevel(LevelRequest{
		Level:      1,
		Vocabulary: words,
		State:      state,
	})
	s.Require().NoError(err)

	s.Len(result.Layout.Words, 2)
	s.Len(result.Selection.Words, len(result.Layout.Words))

	hasReview := false
	for _, w := range result.Selection.Words {
		s.NotNil(result.Layout.Word(w.ID), "selected %q is not in the layout", w.ID)
		hasReview = hasReview || state.IsReview(w.ID)
	}
	s.Equal(hasReview, result.Selection.HasReview)
	s.Contains(result.Selection.IDs(), model.VocabID("tar"))
}

func (s *ControllerSuite) TestPlacedSelectionRecomputesReview() {
	layout := &model.PuzzleLayout{Words: []model.PuzzleWord{{ID: "cat"}, {ID: "tar"}}}
	sel := model.Selection{Words: vocab("cat", "act", "tar"), HasReview: true}
	state := model.NewLearningState(nil, []model.VocabID{"act"})

	placed := placedSelection(sel, layout, state)

	s.Equal([]model.VocabID{"cat", "tar"}, placed.IDs())
	s.False(placed.HasReview)
}

func (s *ControllerSuite) TestConfigWithDefaultsFillsEachField() {
	cfg := Config{Concurrency: 8, MinWordCount: 3}.WithDefaults()

	def := DefaultConfig()
	s.Equal(Config{
		SelectionRetries:   def.SelectionRetries,
		FallbackMaxRetries: def.FallbackMaxRetries,
		MinWordCount:       3,
		Concurrency:        8,
	}, cfg)
	s.Equal(def, Config{}.WithDefaults())
}

// PregenerateLevels tests

func (s *ControllerSuite) TestPregenerateLevels() {
	requests := make([]LevelRequest, 6)
	for i := range requests {
		requests[i] = LevelRequest{
			Level:      i + 1,
			Vocabulary: vocab("cat", "car", "tar", "art", "rat", "star", "cart"),
			State:      model.NewLearningState(nil, nil),
		}
	}

	results, err := s.controller.PregenerateLevels(context.Background(), requests)
	s.Require().NoError(err)
	s.Require().Len(results, len(requests))
	for i, result := range results {
		s.Equal(i+1, result.Plan.Level)
		s.NotNil(result.Layout)
	}

	// Seeded per task, so a second batch is identical
	again, err := s.controller.PregenerateLevels(context.Background(), requests)
	s.Require().NoError(err)
	for i := range results {
		s.Equal(results[i].Layout.ID, again[i].Layout.ID)
		s.Equal(results[i].Selection.IDs(), again[i].Selection.IDs())
	}
}

func (s *ControllerSuite) TestPregenerateLevelsReturnsFirstError() {
	requests := []LevelRequest{
		{Level: 1, Vocabulary: vocab("cat", "car", "tar")},
		{Level: 2},
	}

	_, err := s.controller.PregenerateLevels(context.Background(), requests)
	s.ErrorIs(err, model.ErrInvalidInput)
}
