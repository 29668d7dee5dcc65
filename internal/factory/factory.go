package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/vocabgrid/internal/config"
	"github.com/mcoot/vocabgrid/internal/dependencies/clock"
	"github.com/mcoot/vocabgrid/internal/dependencies/random"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/level"
	"github.com/mcoot/vocabgrid/internal/services/selector"
	"github.com/mcoot/vocabgrid/internal/services/theme"
	"github.com/mcoot/vocabgrid/internal/services/vocabulary"
)

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Loaded configuration
	Difficulty config.Difficulty
	ThemeList  []model.Theme

	// Services
	Vocabulary *vocabulary.Service
	Generator  *generator.Service
	Selector   *selector.Service
	Themes     *theme.Service
	Levels     *level.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// VocabularyPath is the word list to load (optional)
	// If empty, the vocabulary must be loaded manually
	VocabularyPath string
	// ThemesPath is a YAML theme file (optional)
	ThemesPath string
	// DifficultyPath is a YAML difficulty file (optional)
	// If empty, config.DefaultDifficulty() is used
	DifficultyPath string
	// Seed makes every random choice reproducible when non-zero
	Seed uint64
	// Generator holds the layout retry budget
	// If zero value, defaults to generator.DefaultConfig()
	Generator generator.Config
	// Level holds the orchestration budgets
	// If zero value, defaults to level.DefaultConfig()
	Level level.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	difficulty, err := config.LoadDifficulty(cfg.DifficultyPath)
	if err != nil {
		return nil, fmt.Errorf("loading difficulty: %w", err)
	}
	themes, err := config.LoadThemes(cfg.ThemesPath)
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}

	rnd := random.Random(random.New())
	randomFactory := level.RandomFactory(level.CryptoRandomFactory)
	if cfg.Seed != 0 {
		rnd = random.NewSeeded(cfg.Seed)
		randomFactory = level.SeededRandomFactory(cfg.Seed)
	}

	genCfg := cfg.Generator
	if genCfg.MaxRetries == 0 {
		genCfg = generator.DefaultConfig()
	}
	levelCfg := cfg.Level.WithDefaults()

	app := newWithDependencies(clock.New(), rnd, randomFactory, difficulty, genCfg, levelCfg, logger)
	app.ThemeList = themes

	if cfg.VocabularyPath != "" {
		if err := app.Vocabulary.LoadFromFile(cfg.VocabularyPath); err != nil {
			return nil, fmt.Errorf("loading vocabulary: %w", err)
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	clk clock.Clock,
	rnd random.Random,
	randomFactory level.RandomFactory,
	difficulty config.Difficulty,
	genCfg generator.Config,
	levelCfg level.Config,
	logger *slog.Logger,
) *App {
	vocabService := vocabulary.New(logger)
	genService := generator.New(rnd, genCfg, logger)
	selService := selector.New(rnd, nil, logger)
	themeService := theme.New(selService, logger)
	levels := level.NewController(genService, selService, themeService, difficulty, randomFactory, clk, levelCfg, logger)

	return &App{
		Clock:      clk,
		Random:     rnd,
		Difficulty: difficulty,
		Vocabulary: vocabService,
		Generator:  genService,
		Selector:   selService,
		Themes:     themeService,
		Levels:     levels,
	}
}

// LevelRequest assembles a request for one level from the loaded vocabulary and themes
func (a *App) LevelRequest(lvl, grade int, state model.LearningState) (level.LevelRequest, error) {
	if !a.Vocabulary.IsLoaded() {
		return level.LevelRequest{}, model.ErrVocabularyNotLoaded
	}
	return level.LevelRequest{
		Level:      lvl,
		Grade:      grade,
		Vocabulary: a.Vocabulary.Entries(),
		State:      state,
		Themes:     a.ThemeList,
	}, nil
}
