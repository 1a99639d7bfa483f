// Package batch drives the full analysis pipeline over one or many PokerNow
// session logs: ingest, name resolution, hand assembly, tagging and report
// output.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokernow/internal/alias"
	"github.com/lox/pokernow/internal/analyze"
	"github.com/lox/pokernow/internal/config"
	"github.com/lox/pokernow/internal/handlog"
	"github.com/lox/pokernow/internal/handrank"
	"github.com/lox/pokernow/internal/ingest"
	"github.com/lox/pokernow/internal/report"
)

// Result holds the outcome of processing one session log.
type Result struct {
	LogPath   string
	OutputDir string
	Hands     []*handlog.Hand
	Elapsed   time.Duration
}

// Runner executes the analysis pipeline.
type Runner struct {
	logger zerolog.Logger
	cfg    *config.Config
	clock  quartz.Clock
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the wall clock, for tests.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRunner creates a pipeline runner over the given configuration.
func NewRunner(logger zerolog.Logger, cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		logger: logger,
		cfg:    cfg,
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProcessFile runs the full pipeline over one session log and writes its
// per-session outputs under the configured output directory.
func (r *Runner) ProcessFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := r.clock.Now()

	records, err := ingest.ReadLog(path)
	if err != nil {
		return nil, err
	}

	store, err := alias.Open(r.cfg.Output.MappingDir, path)
	if err != nil {
		return nil, err
	}

	hands := r.AssembleHands(records, store.Resolve)
	r.Enrich(hands)

	outDir := r.OutputDirFor(path)
	if err := report.WriteEnhancedHands(outDir, hands); err != nil {
		return nil, err
	}
	stats := report.Collect(hands)
	if err := report.WriteStatistics(outDir, stats); err != nil {
		return nil, err
	}
	if err := report.WriteSummaryReport(outDir, filepath.Base(path), stats); err != nil {
		return nil, err
	}

	result := &Result{
		LogPath:   path,
		OutputDir: outDir,
		Hands:     hands,
		Elapsed:   r.clock.Since(start),
	}
	r.logger.Info().
		Str("log", filepath.Base(path)).
		Int("hands", len(hands)).
		Dur("elapsed", result.Elapsed).
		Msg("processed session")
	return result, nil
}

// ProcessDir processes every log in dir matching the configured pattern, with
// bounded parallelism, then writes the combined frequency tables.
func (r *Runner) ProcessDir(ctx context.Context, dir string) ([]*Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, r.cfg.Batch.Pattern))
	if err != nil {
		return nil, fmt.Errorf("batch: bad pattern %q: %w", r.cfg.Batch.Pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("batch: no logs matching %s in %s", r.cfg.Batch.Pattern, dir)
	}
	sort.Strings(paths)

	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Batch.Parallelism)
	for i, path := range paths {
		g.Go(func() error {
			result, err := r.ProcessFile(ctx, path)
			if err != nil {
				return fmt.Errorf("batch: %s: %w", filepath.Base(path), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*handlog.Hand
	for _, result := range results {
		all = append(all, result.Hands...)
	}
	if err := r.WriteTables(all); err != nil {
		return nil, err
	}
	return results, nil
}

// AssembleHands classifies and assembles raw records into sealed hands using
// the given name resolver.
func (r *Runner) AssembleHands(records []ingest.Record, resolve alias.Resolver) []*handlog.Hand {
	asm := handlog.NewAssembler(r.logger, handlog.WithResolver(handlog.Resolver(resolve)))
	for _, rec := range records {
		asm.Process(handlog.Classify(rec.Entry, rec.At))
	}
	return asm.Finish()
}

// Enrich tags every hand and, when enabled, attaches showdown hand ranks.
func (r *Runner) Enrich(hands []*handlog.Hand) {
	tagger := analyze.Tagger{LimpThreshold: r.cfg.Analysis.LimpThreshold}
	for _, h := range hands {
		analyze.Enrich(h, tagger)
		if r.cfg.Analysis.HandRanksEnabled() {
			r.fillHandRanks(h)
		}
	}
}

func (r *Runner) fillHandRanks(h *handlog.Hand) {
	board := h.CommunityCards()
	if len(board) != 5 {
		return
	}
	for i, reveal := range h.Showdown {
		desc, err := handrank.Describe(reveal.HoleCards, board)
		if err != nil {
			r.logger.Debug().Err(err).Str("player", reveal.Player).Msg("skipping hand rank")
			continue
		}
		h.Showdown[i].HandRank = desc
	}
}

// WriteTables writes the cross-session frequency tables as CSV under the
// configured table directory.
func (r *Runner) WriteTables(hands []*handlog.Hand) error {
	freq := report.NewFrequency()
	freq.AddHands(hands)

	tableDir := filepath.Join(r.cfg.Output.Dir, r.cfg.Output.TableDir)
	for _, tag := range freq.Tags() {
		path := filepath.Join(tableDir, "tag_"+tag+".csv")
		if err := report.WriteTableCSV(path, freq.TagTable(tag)); err != nil {
			return err
		}
	}
	for _, line := range freq.Lines(r.cfg.Analysis.MinLineCount) {
		path := filepath.Join(tableDir, "line_"+lineFileName(line)+".csv")
		if err := report.WriteTableCSV(path, freq.LineTable(line)); err != nil {
			return err
		}
	}

	return r.writeRangeTables(tableDir, hands)
}

// writeRangeTables writes the showdown range-category tables. Sessions with
// no showdown samples produce no range files.
func (r *Runner) writeRangeTables(tableDir string, hands []*handlog.Hand) error {
	dist := report.NewRangeDistribution()
	dist.AddHands(hands)

	if table := dist.PlayerTable(); len(table.Rows) > 0 {
		path := filepath.Join(tableDir, "range_summary.csv")
		if err := report.WriteTableCSV(path, table); err != nil {
			return err
		}
	}
	for _, tag := range dist.Tags() {
		path := filepath.Join(tableDir, "range_tag_"+tag+".csv")
		if err := report.WriteTableCSV(path, dist.TagTable(tag)); err != nil {
			return err
		}
	}
	for _, line := range dist.Lines() {
		path := filepath.Join(tableDir, "range_line_"+lineFileName(line)+".csv")
		if err := report.WriteTableCSV(path, dist.LineTable(line)); err != nil {
			return err
		}
	}
	return nil
}

// OutputDirFor returns the per-session output directory for a log file.
func (r *Runner) OutputDirFor(logPath string) string {
	base := strings.TrimSuffix(filepath.Base(logPath), filepath.Ext(logPath))
	return filepath.Join(r.cfg.Output.Dir, base)
}

func lineFileName(line string) string {
	return strings.ReplaceAll(line, "/", "-")
}
