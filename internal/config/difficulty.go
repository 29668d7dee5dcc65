// Package config loads the YAML files that drive level generation:
// difficulty tiers, themes and learning state.
package config

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/vocabgrid/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LevelTier sets the word count from a level onwards
type LevelTier struct {
	FromLevel int `yaml:"from_level" validate:"gte=1"`
	Words     int `yaml:"words" validate:"gte=1,lte=20"`
}

// GradeTier sets the pre-fill ratio from a grade onwards
type GradeTier struct {
	FromGrade    int     `yaml:"from_grade" validate:"gte=0"`
	PreFillRatio float64 `yaml:"pre_fill_ratio" validate:"gte=0,lte=1"`
}

// Difficulty maps levels to word counts and grades to pre-fill ratios
type Difficulty struct {
	LevelTiers     []LevelTier `yaml:"level_tiers" validate:"required,min=1,dive"`
	GradeTiers     []GradeTier `yaml:"grade_tiers" validate:"required,min=1,dive"`
	ChallengeBonus int         `yaml:"challenge_bonus" validate:"gte=0,lte=10"`
}

// DefaultDifficulty returns the built-in difficulty curve
func DefaultDifficulty() Difficulty {
	return Difficulty{
		LevelTiers: []LevelTier{
			{FromLevel: 1, Words: 3},
			{FromLevel: 4, Words: 4},
			{FromLevel: 8, Words: 5},
			{FromLevel: 13, Words: 6},
			{FromLevel: 20, Words: 7},
		},
		GradeTiers: []GradeTier{
			{FromGrade: 0, PreFillRatio: 0.5},
			{FromGrade: 2, PreFillRatio: 0.4},
			{FromGrade: 4, PreFillRatio: 0.3},
			{FromGrade: 6, PreFillRatio: 0.2},
		},
		ChallengeBonus: 2,
	}
}

// DesiredWordCount returns the number of words for a level, or 1 without tiers
func (d Difficulty) DesiredWordCount(level int) int {
	if len(d.LevelTiers) == 0 {
		return 1
	}
	words := d.LevelTiers[0].Words
	for _, tier := range d.LevelTiers {
		if level >= tier.FromLevel {
			words = tier.Words
		}
	}
	return words
}

// PreFillRatio returns the share of cells shown up front for a grade, or 0 without tiers
func (d Difficulty) PreFillRatio(grade int) float64 {
	if len(d.GradeTiers) == 0 {
		return 0
	}
	ratio := d.GradeTiers[0].PreFillRatio
	for _, tier := range d.GradeTiers {
		if grade >= tier.FromGrade {
			ratio = tier.PreFillRatio
		}
	}
	return ratio
}

// ChallengeBonusWords returns the extra words added on challenge levels
func (d Difficulty) ChallengeBonusWords() int {
	return d.ChallengeBonus
}

// Validate checks the tiers and sorts them by their starting level/grade
func (d *Difficulty) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: difficulty: %w", model.ErrInvalidConfig, err)
	}
	slices.SortStableFunc(d.LevelTiers, func(a, b LevelTier) int { return cmp.Compare(a.FromLevel, b.FromLevel) })
	slices.SortStableFunc(d.GradeTiers, func(a, b GradeTier) int { return cmp.Compare(a.FromGrade, b.FromGrade) })
	return nil
}

// ParseDifficulty decodes and validates a YAML difficulty document
func ParseDifficulty(data []byte) (Difficulty, error) {
	var d Difficulty
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Difficulty{}, fmt.Errorf("%w: difficulty: %w", model.ErrInvalidConfig, err)
	}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}

// LoadDifficulty reads a difficulty file, or returns the defaults when path is empty
func LoadDifficulty(path string) (Difficulty, error) {
	if path == "" {
		return DefaultDifficulty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Difficulty{}, err
	}
	return ParseDifficulty(data)
}
