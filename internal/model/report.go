package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TestStatus represents the outcome of testing one mutant.
type TestStatus int

const (
	// Killed indicates some input observed a difference.
	Killed TestStatus = iota
	// Survived indicates no input observed a difference.
	Survived
	// Skipped indicates the mutant was not tested.
	Skipped
	// Error indicates the mutant could not be executed at all.
	Error
	// Timeout indicates the mutant ran past the time limit.
	Timeout
)

var testStatusNames = map[TestStatus]string{
	Killed:   "killed",
	Survived: "survived",
	Skipped:  "skipped",
	Error:    "error",
	Timeout:  "timeout",
}

func (s TestStatus) String() string {
	if name, ok := testStatusNames[s]; ok {
		return name
	}

	return "unknown"
}

// ParseTestStatus converts a status name back into a TestStatus.
func ParseTestStatus(name string) (TestStatus, error) {
	for status, n := range testStatusNames {
		if n == name {
			return status, nil
		}
	}

	return Skipped, fmt.Errorf("unknown test status %q", name)
}

// MarshalYAML implements yaml.Marshaler.
func (s TestStatus) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *TestStatus) UnmarshalYAML(node *yaml.Node) error {
	status, err := ParseTestStatus(node.Value)
	if err != nil {
		return err
	}

	*s = status

	return nil
}

// Report is the result of testing a single mutant.
type Report struct {
	File     Path       `yaml:"file"`
	Mutant   Mutant     `yaml:"mutant"`
	Status   TestStatus `yaml:"status"`
	Input    int        `yaml:"input"`              // index of the killing input, -1 when none
	Original string     `yaml:"original,omitempty"` // outcome of the original program for Input
	Mutated  string     `yaml:"mutated,omitempty"`  // outcome of the mutant for Input
	Err      string     `yaml:"error,omitempty"`
}
