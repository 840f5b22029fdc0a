package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, parses and validates a scenario file from path. A
// missing file or malformed YAML surfaces as *LoadError; a
// syntactically valid scenario that violates a semantic rule
// surfaces as *ValidationError.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("scenario file not found")}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	s.Normalize()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
