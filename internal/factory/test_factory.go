package factory

import (
	"time"

	"github.com/mcoot/vocabgrid/internal/config"
	"github.com/mcoot/vocabgrid/internal/dependencies/mocks"
	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/generator"
	"github.com/mcoot/vocabgrid/internal/services/level"
	"github.com/mcoot/vocabgrid/internal/testutil"
)

// TestSeed seeds the per-task randoms used by pre-generation in tests
const TestSeed = 42

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Pre-generation tasks use seeded randoms since the queue mock is not goroutine safe.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		mockClock,
		mockRandom,
		level.SeededRandomFactory(TestSeed),
		config.DefaultDifficulty(),
		generator.DefaultConfig(),
		level.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestVocabulary loads a small vocabulary with two themes for testing
func (t *TestApp) LoadTestVocabulary() error {
	words := []string{
		// animals
		"cat", "rat", "bat", "dog", "hen", "owl", "yak", "ant",
		// food
		"tea", "jam", "egg", "pie", "nut", "oat", "yam", "fig",
		// longer words
		"star", "tree", "rain", "stone", "train", "heart", "table", "water",
	}
	if err := t.Vocabulary.LoadWords(words); err != nil {
		return err
	}

	t.ThemeList = []model.Theme{
		{ID: "animals", Name: "Animals", MemberIDs: ids("cat", "rat", "bat", "dog", "hen", "owl", "yak", "ant")},
		{ID: "food", Name: "Food", MemberIDs: ids("tea", "jam", "egg", "pie", "nut", "oat", "yam", "fig")},
	}
	return nil
}

func ids(values ...string) []model.VocabID {
	result := make([]model.VocabID, len(values))
	for i, v := range values {
		result[i] = model.VocabID(v)
	}
	return result
}
