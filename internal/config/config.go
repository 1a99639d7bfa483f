// Package config loads toolkit configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete toolkit configuration. Blocks are pointers
// so a config file may carry any subset of them; Load fills in the rest.
type Config struct {
	Output   *OutputSettings   `hcl:"output,block"`
	Analysis *AnalysisSettings `hcl:"analysis,block"`
	Batch    *BatchSettings    `hcl:"batch,block"`
}

// OutputSettings controls where results are written
type OutputSettings struct {
	Dir        string `hcl:"dir,optional"`
	MappingDir string `hcl:"mapping_dir,optional"`
	TableDir   string `hcl:"table_dir,optional"`
}

// AnalysisSettings tunes the action tagger
type AnalysisSettings struct {
	LimpThreshold int   `hcl:"limp_threshold,optional"`
	HandRanks     *bool `hcl:"hand_ranks,optional"`
	MinLineCount  int   `hcl:"min_line_count,optional"`
}

// HandRanksEnabled reports whether showdown hand-rank descriptions are on.
// An unset toggle means enabled.
func (a *AnalysisSettings) HandRanksEnabled() bool {
	return a.HandRanks == nil || *a.HandRanks
}

// BatchSettings controls multi-file processing
type BatchSettings struct {
	Parallelism int    `hcl:"parallelism,optional"`
	Pattern     string `hcl:"pattern,optional"`
}

// DefaultConfig returns default toolkit configuration
func DefaultConfig() *Config {
	handRanks := true
	return &Config{
		Output: &OutputSettings{
			Dir:        "analysis",
			MappingDir: ".",
			TableDir:   "tables",
		},
		Analysis: &AnalysisSettings{
			LimpThreshold: 100,
			HandRanks:     &handRanks,
			MinLineCount:  2,
		},
		Batch: &BatchSettings{
			Parallelism: 4,
			Pattern:     "*.csv",
		},
	}
}

// Clone returns a copy whose blocks can be mutated without affecting the
// receiver, for per-command flag overrides.
func (c *Config) Clone() *Config {
	output := *c.Output
	analysis := *c.Analysis
	batch := *c.Batch
	return &Config{Output: &output, Analysis: &analysis, Batch: &batch}
}

// Load loads toolkit configuration from an HCL file. A missing file yields
// the defaults; a file carrying only some blocks or attributes gets the
// defaults for whatever it omits.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	defaults := DefaultConfig()

	if config.Output == nil {
		config.Output = defaults.Output
	}
	if config.Output.Dir == "" {
		config.Output.Dir = defaults.Output.Dir
	}
	if config.Output.MappingDir == "" {
		config.Output.MappingDir = defaults.Output.MappingDir
	}
	if config.Output.TableDir == "" {
		config.Output.TableDir = defaults.Output.TableDir
	}

	if config.Analysis == nil {
		config.Analysis = defaults.Analysis
	}
	if config.Analysis.LimpThreshold == 0 {
		config.Analysis.LimpThreshold = defaults.Analysis.LimpThreshold
	}
	if config.Analysis.HandRanks == nil {
		config.Analysis.HandRanks = defaults.Analysis.HandRanks
	}
	if config.Analysis.MinLineCount == 0 {
		config.Analysis.MinLineCount = defaults.Analysis.MinLineCount
	}

	if config.Batch == nil {
		config.Batch = defaults.Batch
	}
	if config.Batch.Parallelism == 0 {
		config.Batch.Parallelism = defaults.Batch.Parallelism
	}
	if config.Batch.Pattern == "" {
		config.Batch.Pattern = defaults.Batch.Pattern
	}

	return &config, nil
}

// Validate validates the toolkit configuration
func (c *Config) Validate() error {
	if c.Output == nil || c.Analysis == nil || c.Batch == nil {
		return fmt.Errorf("configuration is incomplete")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output dir is required")
	}

	if c.Analysis.LimpThreshold <= 0 {
		return fmt.Errorf("limp threshold must be positive")
	}

	if c.Analysis.MinLineCount < 1 {
		return fmt.Errorf("min line count must be at least 1")
	}

	if c.Batch.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1")
	}

	if c.Batch.Pattern == "" {
		return fmt.Errorf("batch pattern is required")
	}

	return nil
}
