// Package config provides configuration structures for the answer ranker.
// It defines scoring, ranking and output options and loads them from TOML files.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Reference modes select which n-grams an answer is matched against.
const (
	ReferenceModeQuestion = "question" // n-grams of the question only
	ReferenceModeGold     = "gold"     // n-grams of the document's gold-correct answers
	ReferenceModeCombined = "combined" // union of the two
)

// Zero-correct policies decide what happens when a document has no gold-correct answer,
// which leaves precision at R undefined.
const (
	ZeroCorrectSkip = "skip" // report "n/a" and leave the running average untouched
	ZeroCorrectZero = "zero" // count the document with precision 0
	ZeroCorrectFail = "fail" // fail the document
)

// Color modes for console reports.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

const (
	defaultMaxN    = 3
	maxSupportedN  = 3
	defaultWorkers = 1
)

// RankerSettings contains all configuration options for scoring and ranking a batch of documents.
type RankerSettings struct {
	MaxN              int    `toml:"max_n" json:"max_n"`                             // Highest n-gram order (1..3)
	ReferenceMode     string `toml:"reference_mode" json:"reference_mode"`           // "question", "gold" or "combined"
	EntityScoring     bool   `toml:"entity_scoring" json:"entity_scoring"`           // Apply the named-entity proximity adjustment
	TieBreak          *bool  `toml:"tie_break" json:"tie_break,omitempty"`           // Rank correct answers first among equal scores (default true)
	ZeroCorrectPolicy string `toml:"zero_correct_policy" json:"zero_correct_policy"` // "skip", "zero" or "fail"
	Workers           int    `toml:"workers" json:"workers"`                         // Documents processed in parallel
	OutputDir         string `toml:"output_dir" json:"output_dir"`                   // Empty writes reports to the console
	Color             string `toml:"color" json:"color"`                             // "auto", "on" or "off"
	GoldStore         string `toml:"gold_store" json:"gold_store"`                   // Optional msgpack file with persisted gold reference sets
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() RankerSettings {
	s := RankerSettings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to the settings
func (settings *RankerSettings) ApplyDefaults() {
	if settings.MaxN == 0 {
		settings.MaxN = defaultMaxN
	}
	if settings.ReferenceMode == "" {
		settings.ReferenceMode = ReferenceModeQuestion
	}
	if settings.TieBreak == nil {
		tieBreak := true
		settings.TieBreak = &tieBreak
	}
	if settings.ZeroCorrectPolicy == "" {
		settings.ZeroCorrectPolicy = ZeroCorrectSkip
	}
	if settings.Workers <= 0 {
		settings.Workers = defaultWorkers
	}
	if settings.Color == "" {
		settings.Color = ColorAuto
	}
}

// UseTieBreak reports whether correctness tie-breaking is enabled.
func (settings *RankerSettings) UseTieBreak() bool {
	return settings.TieBreak == nil || *settings.TieBreak
}

// Validate checks the settings and returns one message per problem found.
func (settings *RankerSettings) Validate() []string {
	var errors []string

	if settings.MaxN < 1 || settings.MaxN > maxSupportedN {
		errors = append(errors, fmt.Sprintf("max_n must be between 1 and %d, got %d", maxSupportedN, settings.MaxN))
	}

	if !oneOf(settings.ReferenceMode, ReferenceModeQuestion, ReferenceModeGold, ReferenceModeCombined) {
		errors = append(errors, "Invalid reference_mode '"+settings.ReferenceMode+"' (must be 'question', 'gold' or 'combined')")
	}

	if !oneOf(settings.ZeroCorrectPolicy, ZeroCorrectSkip, ZeroCorrectZero, ZeroCorrectFail) {
		errors = append(errors, "Invalid zero_correct_policy '"+settings.ZeroCorrectPolicy+"' (must be 'skip', 'zero' or 'fail')")
	}

	if settings.Workers < 1 {
		errors = append(errors, fmt.Sprintf("workers must be at least 1, got %d", settings.Workers))
	}

	if !oneOf(settings.Color, ColorAuto, ColorOn, ColorOff) {
		errors = append(errors, "Invalid color '"+settings.Color+"' (must be 'auto', 'on' or 'off')")
	}

	if settings.OutputDir != "" && strings.TrimSpace(settings.OutputDir) == "" {
		errors = append(errors, "output_dir cannot be whitespace-only")
	}

	return errors
}

// LoadFile reads settings from a TOML file and applies defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (RankerSettings, error) {
	var settings RankerSettings
	meta, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return RankerSettings{}, fmt.Errorf("failed to decode settings file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return RankerSettings{}, fmt.Errorf("unknown keys in settings file %s: %s", path, strings.Join(keys, ", "))
	}
	settings.ApplyDefaults()
	return settings, nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
