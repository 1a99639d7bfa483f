package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokernow.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
output {
  dir = "out"
}

analysis {
  limp_threshold = 200
}

batch {
  parallelism = 8
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, ".", cfg.Output.MappingDir)
	assert.Equal(t, "tables", cfg.Output.TableDir)
	assert.Equal(t, 200, cfg.Analysis.LimpThreshold)
	assert.Equal(t, 2, cfg.Analysis.MinLineCount)
	assert.Equal(t, 8, cfg.Batch.Parallelism)
	assert.Equal(t, "*.csv", cfg.Batch.Pattern)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOmittedHandRanksStaysEnabled(t *testing.T) {
	path := writeConfig(t, `
analysis {
  limp_threshold = 200
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Analysis.HandRanks)
	assert.True(t, *cfg.Analysis.HandRanks)
	assert.True(t, cfg.Analysis.HandRanksEnabled())
}

func TestLoadExplicitHandRanksOff(t *testing.T) {
	path := writeConfig(t, `
analysis {
  hand_ranks = false
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Analysis.HandRanksEnabled())
}

func TestLoadPartialBlocks(t *testing.T) {
	path := writeConfig(t, `
batch {
  parallelism = 2
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "analysis", cfg.Output.Dir)
	assert.Equal(t, 100, cfg.Analysis.LimpThreshold)
	assert.True(t, cfg.Analysis.HandRanksEnabled())
	assert.Equal(t, 2, cfg.Batch.Parallelism)
	assert.NoError(t, cfg.Validate())
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, "output {")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Output.Dir = "elsewhere"
	off := false
	clone.Analysis.HandRanks = &off

	assert.Equal(t, "analysis", cfg.Output.Dir)
	assert.True(t, cfg.Analysis.HandRanksEnabled())
	assert.False(t, clone.Analysis.HandRanksEnabled())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }},
		{"negative limp threshold", func(c *Config) { c.Analysis.LimpThreshold = -1 }},
		{"zero min line count", func(c *Config) { c.Analysis.MinLineCount = 0 }},
		{"zero parallelism", func(c *Config) { c.Batch.Parallelism = 0 }},
		{"empty pattern", func(c *Config) { c.Batch.Pattern = "" }},
		{"missing block", func(c *Config) { c.Analysis = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
