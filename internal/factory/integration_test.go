package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/level"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestVocabulary())
}

func (s *IntegrationSuite) request(lvl int, state model.LearningState) level.LevelRequest {
	req, err := s.app.LevelRequest(lvl, 0, state)
	s.Require().NoError(err)
	return req
}

// Test: a themed level only uses words from its theme and is solvable
func (s *IntegrationSuite) TestThemedLevelFlow() {
	s.app.MockRandom.QueueString("LEVEL0000001")

	result, err := s.app.Levels.GenerateLevel(s.request(1, model.NewLearningState(nil, nil)))
	s.Require().NoError(err)

	s.Require().NotNil(result.Theme)
	s.Equal("animals", result.Theme.ID)
	s.Equal("LEVEL0000001", result.Layout.ID)
	s.Len(result.Layout.Words, 3)
	for _, w := range result.Selection.Words {
		s.True(result.Theme.Contains(w.ID), "%s is not an animal", w.Spelling)
	}

	// Solving the puzzle with the generated solution validates every word
	solution := generator.Solution(result.Layout)
	s.True(generator.IsPuzzleComplete(result.Layout, solution))
	s.True(generator.ValidatePuzzle(result.Layout, solution))
}

// Test: the second level uses the second theme
func (s *IntegrationSuite) TestLevelsRotateThemes() {
	result, err := s.app.Levels.GenerateLevel(s.request(2, model.NewLearningState(nil, nil)))
	s.Require().NoError(err)

	s.Require().NotNil(result.Theme)
	s.Equal("food", result.Theme.ID)
}

// Test: a review word is always part of the level
func (s *IntegrationSuite) TestReviewWordIncluded() {
	state := model.NewLearningState([]model.VocabID{"cat"}, []model.VocabID{"owl"})

	result, err := s.app.Levels.GenerateLevel(s.request(1, state))
	s.Require().NoError(err)

	s.True(result.Selection.HasReview)
	s.Equal(model.VocabID("owl"), result.Selection.Words[0].ID)

	// The caller's state is untouched
	s.True(state.IsReview("owl"))
	s.Len(state.Learned, 1)
}

// Test: challenge levels draw from the whole vocabulary
func (s *IntegrationSuite) TestChallengeLevel() {
	result, err := s.app.Levels.GenerateLevel(s.request(5, model.NewLearningState(nil, nil)))
	s.Require().NoError(err)

	s.True(result.Plan.Challenge)
	s.Nil(result.Theme)
	s.Equal(s.app.Difficulty.DesiredWordCount(5)+s.app.Difficulty.ChallengeBonusWords(), result.DesiredCount)
	s.NotEmpty(result.Layout.Words)
}

// Test: pre-generating a batch keeps request order
func (s *IntegrationSuite) TestPregenerateLevels() {
	var requests []level.LevelRequest
	for lvl := 1; lvl <= 6; lvl++ {
		requests = append(requests, s.request(lvl, model.NewLearningState(nil, nil)))
	}

	results, err := s.app.Levels.PregenerateLevels(s.ctx, requests)
	s.Require().NoError(err)
	s.Require().Len(results, 6)

	for i, result := range results {
		s.Equal(i+1, result.Plan.Level)
		s.True(generator.ValidatePuzzle(result.Layout, generator.Solution(result.Layout)))
	}
}

func (s *IntegrationSuite) TestLevelRequestRequiresVocabulary() {
	app := NewTestApp()
	_, err := app.LevelRequest(1, 0, model.NewLearningState(nil, nil))
	s.ErrorIs(err, model.ErrVocabularyNotLoaded)
}

func (s *IntegrationSuite) TestNewLoadsFiles() {
	dir := s.T().TempDir()
	wordsPath := filepath.Join(dir, "words.txt")
	themesPath := filepath.Join(dir, "themes.yaml")
	difficultyPath := filepath.Join(dir, "difficulty.yaml")

	s.Require().NoError(os.WriteFile(wordsPath, []byte("cat\ncar\ntar\nart\nrat\n"), 0o600))
	s.Require().NoError(os.WriteFile(themesPath, []byte("themes: [{id: all, words: [cat, car, tar]}]"), 0o600))
	s.Require().NoError(os.WriteFile(difficultyPath, []byte(`
level_tiers: [{from_level: 1, words: 2}]
grade_tiers: [{from_grade: 0, pre_fill_ratio: 0}]
challenge_bonus: 1
`), 0o600))

	app, err := New(Config{
		VocabularyPath: wordsPath,
		ThemesPath:     themesPath,
		DifficultyPath: difficultyPath,
		Seed:           7,
	})
	s.Require().NoError(err)

	s.Equal(5, app.Vocabulary.WordCount())
	s.Len(app.ThemeList, 1)
	s.Equal(2, app.Difficulty.DesiredWordCount(3))

	req, err := app.LevelRequest(1, 0, model.NewLearningState(nil, nil))
	s.Require().NoError(err)
	result, err := app.Levels.GenerateLevel(req)
	s.Require().NoError(err)
	s.Len(result.Layout.Words, 2)
	s.Equal(result.Layout.LetterCellCount()-len(result.Layout.CrossPoints()), len(result.Layout.AllLetters))
}

func (s *IntegrationSuite) TestNewDefaultsUnsetLevelBudgets() {
	app, err := New(Config{Level: level.Config{Concurrency: 8}})
	s.Require().NoError(err)

	def := level.DefaultConfig()
	cfg := app.Levels.Config()
	s.Equal(8, cfg.Concurrency)
	s.Equal(def.SelectionRetries, cfg.SelectionRetries)
	s.Equal(def.FallbackMaxRetries, cfg.FallbackMaxRetries)
	s.Equal(def.MinWordCount, cfg.MinWordCount)
}

func (s *IntegrationSuite) TestNewRejectsMissingFiles() {
	_, err := New(Config{VocabularyPath: filepath.Join(s.T().TempDir(), "missing.txt")})
	s.Error(err)

	_, err = New(Config{DifficultyPath: filepath.Join(s.T().TempDir(), "missing.yaml")})
	s.Error(err)
}
