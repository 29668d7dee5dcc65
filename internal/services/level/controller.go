package level

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/vocabgrid/internal/dependencies/clock"
	"github.com/mcoot/vocabgrid/internal/dependencies/random"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/selector"
	"github.com/mcoot/vocabgrid/internal/services/theme"
)

// Difficulty supplies per-level word counts and per-grade pre-fill ratios
type Difficulty interface {
	DesiredWordCount(level int) int
	PreFillRatio(grade int) float64
	ChallengeBonusWords() int
}

// Config holds orchestration budgets
type Config struct {
	// SelectionRetries is how many times a failed selection is replaced before shrinking
	SelectionRetries int
	// FallbackMaxRetries is the generator budget for the final, smaller attempt
	FallbackMaxRetries int
	// MinWordCount is the floor the word count shrinks to
	MinWordCount int
	// Concurrency limits parallel pre-generation
	Concurrency int
}

// DefaultConfig returns the default orchestration budgets
func DefaultConfig() Config {
	return Config{
		SelectionRetries:   5,
		FallbackMaxRetries: 200,
		MinWordCount:       2,
		Concurrency:        4,
	}
}

// WithDefaults fills every unset budget from DefaultConfig
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.SelectionRetries <= 0 {
		c.SelectionRetries = def.SelectionRetries
	}
	if c.FallbackMaxRetries <= 0 {
		c.FallbackMaxRetries = def.FallbackMaxRetries
	}
	if c.MinWordCount <= 0 {
		c.MinWordCount = def.MinWordCount
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	return c
}

// LevelRequest is everything needed to build one level
type LevelRequest struct {
	Level      int
	Grade      int
	Vocabulary []model.VocabEntry
	State      model.LearningState
	Themes     []model.Theme
}

// LevelResult is a playable level
type LevelResult struct {
	Plan         model.LevelPlan
	Theme        *model.Theme // nil for unthemed levels
	Selection    model.Selection
	Layout       *model.PuzzleLayout
	DesiredCount int
	Rounds       int // selection+generation rounds used, including the fallback
	GeneratedAt  time.Time
	Duration     time.Duration
}

// Controller runs selection and generation for a level, retrying with other
// word combinations and finally fewer words when a layout cannot be built.
type Controller struct {
	generator     *generator.Service
	selector      *selector.Service
	themes        *theme.Service
	difficulty    Difficulty
	randomFactory RandomFactory
	clock         clock.Clock
	cfg           Config
	logger        *slog.Logger
}

// NewController creates a new level Controller
func NewController(
	gen *generator.Service,
	sel *selector.Service,
	themes *theme.Service,
	difficulty Difficulty,
	randomFactory RandomFactory,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if randomFactory == nil {
		randomFactory = CryptoRandomFactory
	}
	return &Controller{
		generator:     gen,
		selector:      sel,
		themes:        themes,
		difficulty:    difficulty,
		randomFactory: randomFactory,
		clock:         clk,
		cfg:           cfg.WithDefaults(),
		logger:        logger.With(slog.String("component", "level-controller")),
	}
}

// Config returns the budgets the controller runs with
func (c *Controller) Config() Config {
	return c.cfg
}

// withRandom returns a controller whose services draw from rnd
func (c *Controller) withRandom(rnd random.Random) *Controller {
	clone := *c
	clone.generator = c.generator.WithRandom(rnd)
	clone.selector = c.selector.WithRandom(rnd)
	clone.themes = c.themes.WithSelector(clone.selector)
	return &clone
}

// GenerateLevel builds a level. It never modifies req.State.
func (c *Controller) GenerateLevel(req LevelRequest) (*LevelResult, error) {
	if len(req.Vocabulary) == 0 {
		return nil, model.ErrInvalidInput
	}
	started := c.clock.Now()

	plan, th := c.themes.ThemeForLevel(req.Level, req.Themes)
	desired := c.difficulty.DesiredWordCount(plan.Level)
	if plan.Challenge {
		desired += c.difficulty.ChallengeBonusWords()
	}
	ratio := c.difficulty.PreFillRatio(req.Grade)

	logger := c.logger.With(slog.Int("level", plan.Level), slog.Bool("challenge", plan.Challenge))
	if th != nil {
		logger = logger.With(slog.String("theme", th.ID))
	}

	result := &LevelResult{Plan: plan, Theme: th, DesiredCount: desired}
	finish := func(sel model.Selection, layout *model.PuzzleLayout) *LevelResult {
		result.Selection = placedSelection(sel, layout, req.State)
		if dropped := len(sel.Words) - len(result.Selection.Words); dropped > 0 {
			logger.Debug("dropped selected words missing from layout", slog.Int("dropped", dropped))
		}
		result.Layout = layout
		result.GeneratedAt = c.clock.Now()
		result.Duration = c.clock.Since(started)
		logger.Info("level generated",
			slog.Int("words", len(result.Selection.Words)),
			slog.Int("rounds", result.Rounds),
			slog.Duration("duration", result.Duration),
		)
		return result
	}

	state := req.State.Clone()
	var lastErr error
	for round := 0; round <= c.cfg.SelectionRetries; round++ {
		sel := c.selectWords(req.Vocabulary, th, state, desired, logger)
		if len(sel.Words) == 0 {
			return nil, model.ErrInvalidInput
		}

		result.Rounds++
		layout, err := c.generator.Generate(sel.Words, ratio)
		if err == nil {
			return finish(sel, layout), nil
		}
		if !errors.Is(err, model.ErrGenerationExhausted) {
			return nil, err
		}
		lastErr = err

		// Demote one chosen word so the next round picks a different combination
		demoted := demotionCandidate(sel, state)
		state.MarkLearned(demoted)
		logger.Info("retrying level with a different selection",
			slog.Int("round", round+1),
			slog.String("demoted", string(demoted)),
		)
	}

	reduced := max(c.cfg.MinWordCount, desired/2)
	logger.Info("shrinking level word count",
		slog.Int("desired", desired),
		slog.Int("reduced", reduced),
	)

	sel := c.selectWords(req.Vocabulary, th, req.State.Clone(), reduced, logger)
	result.Rounds++
	layout, err := c.generator.GenerateWithRetries(sel.Words, ratio, c.cfg.FallbackMaxRetries)
	if err == nil {
		return finish(sel, layout), nil
	}
	if errors.Is(err, model.ErrGenerationExhausted) {
		lastErr = err
	} else {
		return nil, err
	}

	logger.Warn("level generation failed", slog.String("error", lastErr.Error()))
	return nil, fmt.Errorf("%w: level %d: %w", model.ErrLevelGenerationFailed, plan.Level, lastErr)
}

// selectWords picks from the theme when there is one, falling back to the
// full vocabulary if the theme yields nothing.
func (c *Controller) selectWords(vocab []model.VocabEntry, th *model.Theme, state model.LearningState, desired int, logger *slog.Logger) model.Selection {
	var sel model.Selection
	if th != nil {
		sel = c.themes.SelectWordsFromTheme(vocab, th, state, desired)
		if len(sel.Words) == 0 {
			logger.Warn("theme has no usable words, using full vocabulary")
		}
	}
	if len(sel.Words) == 0 {
		sel = c.selector.SelectWordsForLevel(vocab, state, desired)
	}
	if len(sel.Words) < desired {
		logger.Info("selection shortfall",
			slog.Int("desired", desired),
			slog.Int("selected", len(sel.Words)),
		)
	}
	return sel
}

// placedSelection keeps only the selected words the layout actually contains,
// since the generator drops duplicate spellings and non-letter words.
func placedSelection(sel model.Selection, layout *model.PuzzleLayout, state model.LearningState) model.Selection {
	placed := model.Selection{Words: make([]model.VocabEntry, 0, len(sel.Words))}
	for _, w := range sel.Words {
		if layout.Word(w.ID) == nil {
			continue
		}
		placed.Words = append(placed.Words, w)
		if state.IsReview(w.ID) {
			placed.HasReview = true
		}
	}
	return placed
}

// demotionCandidate picks the most recently chosen new word, then the most
// recently chosen word that is not a review word.
func demotionCandidate(sel model.Selection, state model.LearningState) model.VocabID {
	for i := len(sel.Words) - 1; i >= 0; i-- {
		if state.IsNew(sel.Words[i].ID) {
			return sel.Words[i].ID
		}
	}
	for i := len(sel.Words) - 1; i >= 0; i-- {
		if !state.IsReview(sel.Words[i].ID) {
			return sel.Words[i].ID
		}
	}
	return sel.Words[len(sel.Words)-1].ID
}
