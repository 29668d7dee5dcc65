package theme

import (
	"log/slog"

	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/services/selector"
)

// ChallengeInterval makes every Nth level a challenge level
const ChallengeInterval = 5

// PlanLevel maps a 1-based level number to its word pool. Every 5th level is a
// challenge level drawing from the full vocabulary; the others cycle through
// the themes in order, skipping the slots taken by challenge levels.
func PlanLevel(level, totalThemes int) model.LevelPlan {
	if level < 1 {
		level = 1
	}
	if level%ChallengeInterval == 0 {
		return model.LevelPlan{Level: level, Challenge: true, ThemeIndex: -1}
	}
	if totalThemes <= 0 {
		return model.LevelPlan{Level: level, ThemeIndex: -1}
	}
	index := (level - level/ChallengeInterval - 1) % totalThemes
	return model.LevelPlan{Level: level, ThemeIndex: index}
}

// Service narrows word selection to a theme
type Service struct {
	selector *selector.Service
	logger   *slog.Logger
}

// New creates a new theme Service
func New(sel *selector.Service, logger *slog.Logger) *Service {
	return &Service{
		selector: sel,
		logger:   logger.With(slog.String("component", "theme")),
	}
}

// WithSelector returns a copy of the service using sel
func (s *Service) WithSelector(sel *selector.Service) *Service {
	clone := *s
	clone.selector = sel
	return &clone
}

// ThemeForLevel returns the plan for a level and its theme, or nil when the
// level is unthemed.
func (s *Service) ThemeForLevel(level int, themes []model.Theme) (model.LevelPlan, *model.Theme) {
	plan := PlanLevel(level, len(themes))
	if !plan.IsThemed() {
		return plan, nil
	}
	return plan, &themes[plan.ThemeIndex]
}

// SelectWordsFromTheme applies the selector's priority order to the theme's
// members only, trying shorter words before longer ones.
func (s *Service) SelectWordsFromTheme(allWords []model.VocabEntry, theme *model.Theme, state model.LearningState, desiredCount int) model.Selection {
	members := make(map[model.VocabID]struct{}, len(theme.MemberIDs))
	for _, id := range theme.MemberIDs {
		members[id] = struct{}{}
	}

	var candidates []model.VocabEntry
	for _, e := range allWords {
		if _, ok := members[e.ID]; ok {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) < desiredCount {
		s.logger.Debug("theme smaller than desired count",
			slog.String("theme", theme.ID),
			slog.Int("members", len(candidates)),
			slog.Int("desired", desiredCount),
		)
	}

	return s.selector.Select(candidates, state, desiredCount, selector.Options{ShorterFirst: true})
}
