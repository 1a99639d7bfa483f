package main

import (
	"context"
	"os"

	"github.com/lox/pokernow/internal/batch"
	"github.com/lox/pokernow/internal/handlog"
	"github.com/lox/pokernow/internal/report"
)

// BatchCmd runs the full pipeline over every log in a directory.
type BatchCmd struct {
	Dir string `arg:"" help:"Directory containing PokerNow session CSVs"`

	Out         string `help:"Output directory (overrides config)"`
	Parallelism int    `help:"Concurrent sessions (overrides config)"`
	Pattern     string `help:"Glob pattern for log files (overrides config)"`
}

func (cmd *BatchCmd) Run(rc *runContext) error {
	cfg := rc.cfg.Clone()
	if cmd.Out != "" {
		cfg.Output.Dir = cmd.Out
	}
	if cmd.Parallelism > 0 {
		cfg.Batch.Parallelism = cmd.Parallelism
	}
	if cmd.Pattern != "" {
		cfg.Batch.Pattern = cmd.Pattern
	}

	runner := batch.NewRunner(rc.logger, cfg)
	results, err := runner.ProcessDir(context.Background(), cmd.Dir)
	if err != nil {
		return err
	}

	var all []*handlog.Hand
	for _, result := range results {
		all = append(all, result.Hands...)
	}
	stats := report.Collect(all)
	report.RenderSessionStats(os.Stdout, cmd.Dir, stats)
	rc.logger.Info().Int("sessions", len(results)).Int("hands", len(all)).Msg("batch complete")
	return nil
}
