// Package scenario maps YAML scenario files onto the engine's input
// aggregates. This is calling-layer code: the engine packages never
// import it and make no assumption about where their inputs come from.
package scenario

import (
	"fmt"
	"os"

	"github.com/aristath/proforma/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads a scenario file into a full assumption snapshot. Dates use
// YAML timestamp syntax (e.g. 2030-01-01). Structural validation is the
// engine's job; this only rejects unreadable or unparseable files.
func Load(path string) (*domain.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document.
func Parse(data []byte) (*domain.Assumptions, error) {
	var a domain.Assumptions
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if a.Analysis.PeriodType == "" {
		a.Analysis.PeriodType = domain.PeriodMonthly
	}
	return &a, nil
}
