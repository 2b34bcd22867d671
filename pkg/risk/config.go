package risk

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWeights reads a weight table from a YAML file. An empty path yields the
// compiled-in defaults; a missing or unreadable file falls back to the
// defaults with the read error reported so the caller can log it.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultWeights(), err
	}

	weights := DefaultWeights()
	if err := yaml.Unmarshal(content, &weights); err != nil {
		return DefaultWeights(), err
	}

	return weights, nil
}
