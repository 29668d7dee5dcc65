package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input: no usable words")

	// Generation errors
	ErrPlacementInfeasible   = errors.New("word could not be placed")
	ErrGenerationExhausted   = errors.New("puzzle generation exhausted all retries")
	ErrLevelGenerationFailed = errors.New("level generation failed")

	// Vocabulary errors
	ErrVocabularyNotLoaded = errors.New("vocabulary not loaded")
	ErrThemeNotFound       = errors.New("theme not found")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// GenerationExhaustedError is returned when every generation attempt failed
type GenerationExhaustedError struct {
	Attempts int
	Words    []string
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts (%d words)", ErrGenerationExhausted.Error(), e.Attempts, len(e.Words))
}

// Is lets errors.Is match ErrGenerationExhausted
func (e *GenerationExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}
