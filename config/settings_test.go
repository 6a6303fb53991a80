package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	settings := RankerSettings{}
	settings.ApplyDefaults()

	assert.Equal(t, 3, settings.MaxN)
	assert.Equal(t, ReferenceModeQuestion, settings.ReferenceMode)
	assert.Equal(t, ZeroCorrectSkip, settings.ZeroCorrectPolicy)
	assert.Equal(t, 1, settings.Workers)
	assert.Equal(t, ColorAuto, settings.Color)
	assert.True(t, settings.UseTieBreak())
	assert.False(t, settings.EntityScoring)
	assert.Empty(t, settings.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	tieBreak := false
	settings := RankerSettings{
		MaxN:              2,
		ReferenceMode:     ReferenceModeCombined,
		TieBreak:          &tieBreak,
		ZeroCorrectPolicy: ZeroCorrectFail,
		Workers:           4,
		Color:             ColorOff,
	}
	settings.ApplyDefaults()

	assert.Equal(t, 2, settings.MaxN)
	assert.Equal(t, ReferenceModeCombined, settings.ReferenceMode)
	assert.False(t, settings.UseTieBreak())
	assert.Equal(t, ZeroCorrectFail, settings.ZeroCorrectPolicy)
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, ColorOff, settings.Color)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		modify         func(s *RankerSettings)
		expectedErrors int
	}{
		{"defaults are valid", func(s *RankerSettings) {}, 0},
		{"max_n too large", func(s *RankerSettings) { s.MaxN = 4 }, 1},
		{"max_n negative", func(s *RankerSettings) { s.MaxN = -1 }, 1},
		{"unknown reference mode", func(s *RankerSettings) { s.ReferenceMode = "answers" }, 1},
		{"unknown zero policy", func(s *RankerSettings) { s.ZeroCorrectPolicy = "nan" }, 1},
		{"zero workers", func(s *RankerSettings) { s.Workers = 0 }, 1},
		{"unknown color", func(s *RankerSettings) { s.Color = "rainbow" }, 1},
		{"whitespace output dir", func(s *RankerSettings) { s.OutputDir = "   " }, 1},
		{"several problems", func(s *RankerSettings) { s.MaxN = 9; s.Color = "x" }, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(&settings)
			errors := settings.Validate()
			assert.Len(t, errors, tt.expectedErrors, "errors: %v", errors)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ranker.toml")
	content := `
max_n = 2
reference_mode = "combined"
entity_scoring = true
tie_break = false
zero_correct_policy = "zero"
workers = 3
output_dir = "reports"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	settings, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, settings.MaxN)
	assert.Equal(t, ReferenceModeCombined, settings.ReferenceMode)
	assert.True(t, settings.EntityScoring)
	assert.False(t, settings.UseTieBreak())
	assert.Equal(t, ZeroCorrectZero, settings.ZeroCorrectPolicy)
	assert.Equal(t, 3, settings.Workers)
	assert.Equal(t, "reports", settings.OutputDir)
	assert.Equal(t, ColorAuto, settings.Color, "defaults fill keys missing from the file")
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.toml")
		require.NoError(t, os.WriteFile(path, []byte("max_ngram = 2\n"), 0600))
		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_ngram")
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("max_n = = 2\n"), 0600))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}
