package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/vocabgrid/internal/model"
)

type stateFile struct {
	Learned []string `yaml:"learned"`
	Review  []string `yaml:"review"`
}

// ParseLearningState decodes a YAML document with learned and review id lists
func ParseLearningState(data []byte) (model.LearningState, error) {
	var file stateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return model.LearningState{}, fmt.Errorf("%w: learning state: %w", model.ErrInvalidConfig, err)
	}
	return model.NewLearningState(toIDs(file.Learned), toIDs(file.Review)), nil
}

// LoadLearningState reads a learning state file. An empty path means nothing learned yet.
func LoadLearningState(path string) (model.LearningState, error) {
	if path == "" {
		return model.NewLearningState(nil, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LearningState{}, err
	}
	return ParseLearningState(data)
}

func toIDs(values []string) []model.VocabID {
	ids := make([]model.VocabID, len(values))
	for i, v := range values {
		ids[i] = model.VocabID(v)
	}
	return ids
}
