package main

import (
	"context"
	"os"

	"github.com/lox/pokernow/internal/batch"
	"github.com/lox/pokernow/internal/report"
)

// AnalyzeCmd runs the full pipeline over one session log.
type AnalyzeCmd struct {
	Log string `arg:"" help:"Path to PokerNow session CSV"`

	Out           string `help:"Output directory (overrides config)"`
	LimpThreshold int    `help:"Big blind fallback for limp detection (overrides config)"`
	NoHandRanks   bool   `help:"Skip showdown hand-rank descriptions"`
}

func (cmd *AnalyzeCmd) Run(rc *runContext) error {
	cfg := rc.cfg.Clone()
	if cmd.Out != "" {
		cfg.Output.Dir = cmd.Out
	}
	if cmd.LimpThreshold > 0 {
		cfg.Analysis.LimpThreshold = cmd.LimpThreshold
	}
	if cmd.NoHandRanks {
		off := false
		cfg.Analysis.HandRanks = &off
	}

	runner := batch.NewRunner(rc.logger, cfg)
	result, err := runner.ProcessFile(context.Background(), cmd.Log)
	if err != nil {
		return err
	}

	stats := report.Collect(result.Hands)
	report.RenderSessionStats(os.Stdout, cmd.Log, stats)
	rc.logger.Info().Str("dir", result.OutputDir).Msg("analysis written")
	return nil
}
