package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines an expected-count test over one puzzle input.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the puzzle text inline. Exactly one of Input and InputFile
	// must be set.
	Input string `yaml:"input,omitempty"`

	// InputFile is a path to the puzzle text, relative to the scenario file.
	InputFile string `yaml:"input_file,omitempty"`

	// Unfold is the replication factor; zero means 1.
	Unfold int `yaml:"unfold,omitempty"`

	// Workers bounds solver concurrency; zero means one per CPU.
	Workers int `yaml:"workers,omitempty"`

	Expect Expectation `yaml:"expect"`
}

// Expectation lists the counts a scenario must produce.
type Expectation struct {
	// Total is the required sum over all records.
	Total *uint64 `yaml:"total"`

	// Counts optionally pins every per-record count, in input order.
	Counts []uint64 `yaml:"counts,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// A relative InputFile is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.InputFile != "" && !filepath.IsAbs(scenario.InputFile) {
		scenario.InputFile = filepath.Join(filepath.Dir(path), scenario.InputFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input == "" && s.InputFile == "":
		return fmt.Errorf("one of input or input_file is required")
	case s.Input != "" && s.InputFile != "":
		return fmt.Errorf("input and input_file are mutually exclusive")
	}

	if s.InputFile != "" {
		if _, err := os.Stat(s.InputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.InputFile)
		}
	}

	if s.Unfold < 0 {
		return fmt.Errorf("unfold must be at least 1, got %d", s.Unfold)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", s.Workers)
	}

	if s.Expect.Total == nil {
		return fmt.Errorf("expect.total is required")
	}

	return nil
}

// unfold returns the effective unfold factor.
func (s *Scenario) unfold() int {
	if s.Unfold == 0 {
		return 1
	}
	return s.Unfold
}

// inputText returns the puzzle text of the scenario.
func (s *Scenario) inputText() (string, error) {
	if s.InputFile == "" {
		return s.Input, nil
	}
	data, err := os.ReadFile(s.InputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
