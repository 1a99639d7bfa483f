package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lox/pokernow/internal/alias"
	"github.com/lox/pokernow/internal/batch"
	"github.com/lox/pokernow/internal/handlog"
	"github.com/lox/pokernow/internal/ingest"
	"github.com/lox/pokernow/internal/report"
)

// ReportCmd renders cross-session frequency tables to stdout.
type ReportCmd struct {
	Logs []string `arg:"" help:"Session CSVs or directories of them"`

	Tag      string `help:"Render only this tag's table"`
	Line     string `help:"Render only this action line's table"`
	MinCount int    `help:"Minimum occurrences for an action line to be shown (overrides config)"`
	Ranges   bool   `help:"Render showdown range-category tables instead of frequencies"`
}

func (cmd *ReportCmd) Run(rc *runContext) error {
	paths, err := cmd.expandLogs(rc)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(rc.logger, rc.cfg)
	var all []*handlog.Hand
	for _, path := range paths {
		records, err := ingest.ReadLog(path)
		if err != nil {
			return err
		}
		store, err := alias.Open(rc.cfg.Output.MappingDir, path)
		if err != nil {
			return err
		}
		hands := runner.AssembleHands(records, store.Resolve)
		runner.Enrich(hands)
		all = append(all, hands...)
	}
	rc.logger.Debug().Int("sessions", len(paths)).Int("hands", len(all)).Msg("collected hands")

	if cmd.Ranges {
		return cmd.renderRanges(all)
	}

	freq := report.NewFrequency()
	freq.AddHands(all)

	if cmd.Tag != "" {
		report.RenderTable(os.Stdout, freq.TagTable(cmd.Tag))
		return nil
	}
	if cmd.Line != "" {
		report.RenderTable(os.Stdout, freq.LineTable(cmd.Line))
		return nil
	}

	for _, tag := range freq.Tags() {
		report.RenderTable(os.Stdout, freq.TagTable(tag))
	}
	minCount := rc.cfg.Analysis.MinLineCount
	if cmd.MinCount > 0 {
		minCount = cmd.MinCount
	}
	for _, line := range freq.Lines(minCount) {
		report.RenderTable(os.Stdout, freq.LineTable(line))
	}
	return nil
}

func (cmd *ReportCmd) renderRanges(hands []*handlog.Hand) error {
	dist := report.NewRangeDistribution()
	dist.AddHands(hands)

	if cmd.Tag != "" {
		report.RenderTable(os.Stdout, dist.TagTable(cmd.Tag))
		return nil
	}
	if cmd.Line != "" {
		report.RenderTable(os.Stdout, dist.LineTable(cmd.Line))
		return nil
	}

	report.RenderTable(os.Stdout, dist.PlayerTable())
	for _, tag := range dist.Tags() {
		report.RenderTable(os.Stdout, dist.TagTable(tag))
	}
	for _, line := range dist.Lines() {
		report.RenderTable(os.Stdout, dist.LineTable(line))
	}
	return nil
}

func (cmd *ReportCmd) expandLogs(rc *runContext) ([]string, error) {
	var paths []string
	for _, arg := range cmd.Logs {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, rc.cfg.Batch.Pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no session logs found")
	}
	sort.Strings(paths)
	return paths, nil
}
