package batch

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokernow/internal/config"
	"github.com/lox/pokernow/internal/report"
)

const sampleLog = `entry,at,order
"-- ending hand #1 --",2026-08-01T00:00:09Z,9
"""Cy @ c1"" collected 30 from pot",2026-08-01T00:00:08Z,8
"""Ada @ a1"" folds",2026-08-01T00:00:07Z,7
"""Cy @ c1"" bets 20",2026-08-01T00:00:06Z,6
"Flop:  [Q♥, 6♠, 8♣]",2026-08-01T00:00:05Z,5
"""Bo @ b1"" folds",2026-08-01T00:00:04Z,4
"""Ada @ a1"" calls 30",2026-08-01T00:00:03Z,3
"""Cy @ c1"" raises to 30",2026-08-01T00:00:02Z,2
"""Bo @ b1"" posts a big blind of 10",2026-08-01T00:00:01Z,1
"""Ada @ a1"" posts a small blind of 5",2026-08-01T00:00:01Z,1
"Player stacks: #1 ""Ada @ a1"" (1000) | #2 ""Bo @ b1"" (900) | #3 ""Cy @ c1"" (800)",2026-08-01T00:00:00Z,0
"-- starting hand #1  (id: abc123) --",2026-08-01T00:00:00Z,0
`

const showdownLog = `entry,at,order
"-- starting hand #1  (id: sd1) --",2026-08-02T00:00:00Z,0
"Player stacks: #1 ""Ada @ a1"" (1000) | #2 ""Bo @ b1"" (900)",2026-08-02T00:00:00Z,1
"""Ada @ a1"" posts a small blind of 5",2026-08-02T00:00:01Z,2
"""Bo @ b1"" posts a big blind of 10",2026-08-02T00:00:01Z,3
"""Ada @ a1"" raises to 30",2026-08-02T00:00:02Z,4
"""Bo @ b1"" calls 30",2026-08-02T00:00:03Z,5
"Flop:  [Q♥, 6♠, 8♣]",2026-08-02T00:00:04Z,6
"""Bo @ b1"" checks",2026-08-02T00:00:05Z,7
"""Ada @ a1"" bets 40",2026-08-02T00:00:06Z,8
"""Bo @ b1"" calls 40",2026-08-02T00:00:07Z,9
"Turn: Q♥, 6♠, 8♣ [9♥]",2026-08-02T00:00:08Z,10
"""Bo @ b1"" checks",2026-08-02T00:00:09Z,11
"""Ada @ a1"" checks",2026-08-02T00:00:10Z,12
"River: Q♥, 6♠, 8♣, 9♥ [2♦]",2026-08-02T00:00:11Z,13
"""Bo @ b1"" checks",2026-08-02T00:00:12Z,14
"""Ada @ a1"" checks",2026-08-02T00:00:13Z,15
"""Ada @ a1"" shows a A♠, A♦.",2026-08-02T00:00:14Z,16
"""Bo @ b1"" shows a K♥, Q♦.",2026-08-02T00:00:14Z,17
"""Ada @ a1"" collected 140 from pot",2026-08-02T00:00:15Z,18
"-- ending hand #1 --",2026-08-02T00:00:16Z,19
`

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = filepath.Join(dir, "analysis")
	cfg.Output.MappingDir = filepath.Join(dir, "mappings")
	return cfg
}

func writeLog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	logPath := writeLog(t, dir, "session.csv")

	runner := NewRunner(zerolog.New(io.Discard), testConfig(dir))
	result, err := runner.ProcessFile(context.Background(), logPath)
	require.NoError(t, err)

	require.Len(t, result.Hands, 1)
	h := result.Hands[0]
	assert.Equal(t, "abc123", h.ID)
	assert.Equal(t, []string{"Ada @ a1", "Bo @ b1", "Cy @ c1"}, h.Players)
	assert.Equal(t, 30, h.PotSize)
	assert.Equal(t, "Cy @ c1", h.Winner)
	assert.Equal(t, "R/B", h.ActionLines["Cy @ c1"])

	data, err := os.ReadFile(filepath.Join(result.OutputDir, report.EnhancedHandsFile))
	require.NoError(t, err)
	var decoded []report.HandJSON
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "abc123", decoded[0].HandID)

	assert.FileExists(t, filepath.Join(result.OutputDir, report.StatisticsFile))
	assert.FileExists(t, filepath.Join(result.OutputDir, report.SummaryFile))
}

func TestProcessFileAppliesMapping(t *testing.T) {
	dir := t.TempDir()
	logPath := writeLog(t, dir, "session.csv")
	cfg := testConfig(dir)

	mapping := map[string]string{"Ada @ a1": "Ada", "Bo @ b1": "Bo", "Cy @ c1": "Cy"}
	data, err := json.Marshal(mapping)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(cfg.Output.MappingDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output.MappingDir, "session_mapping.json"), data, 0o644))

	runner := NewRunner(zerolog.New(io.Discard), cfg)
	result, err := runner.ProcessFile(context.Background(), logPath)
	require.NoError(t, err)

	require.Len(t, result.Hands, 1)
	assert.Equal(t, []string{"Ada", "Bo", "Cy"}, result.Hands[0].Players)
	assert.Equal(t, "Cy", result.Hands[0].Winner)
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "one.csv")
	writeLog(t, dir, "two.csv")
	cfg := testConfig(dir)

	runner := NewRunner(zerolog.New(io.Discard), cfg)
	results, err := runner.ProcessDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "one.csv", filepath.Base(results[0].LogPath))
	assert.Equal(t, "two.csv", filepath.Base(results[1].LogPath))

	tableDir := filepath.Join(cfg.Output.Dir, cfg.Output.TableDir)
	assert.FileExists(t, filepath.Join(tableDir, "tag_open.csv"))
	assert.FileExists(t, filepath.Join(tableDir, "tag_cbet.csv"))
	assert.FileExists(t, filepath.Join(tableDir, "line_R-B.csv"))
}

func TestProcessDirShowdownRangeTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showdown.csv")
	require.NoError(t, os.WriteFile(path, []byte(showdownLog), 0o644))
	cfg := testConfig(dir)

	runner := NewRunner(zerolog.New(io.Discard), cfg)
	results, err := runner.ProcessDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Default config fills showdown hand ranks; the board is complete.
	h := results[0].Hands[0]
	require.Len(t, h.Showdown, 2)
	assert.NotEmpty(t, h.Showdown[0].HandRank)
	assert.NotEmpty(t, h.Showdown[1].HandRank)

	tableDir := filepath.Join(cfg.Output.Dir, cfg.Output.TableDir)
	summary, err := os.ReadFile(filepath.Join(tableDir, "range_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Premium Pairs")
	assert.Contains(t, string(summary), "Ada @ a1")
	assert.FileExists(t, filepath.Join(tableDir, "range_tag_open.csv"))
	assert.FileExists(t, filepath.Join(tableDir, "range_tag_cbet.csv"))
}

func TestProcessFileHandRanksDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showdown.csv")
	require.NoError(t, os.WriteFile(path, []byte(showdownLog), 0o644))
	cfg := testConfig(dir)
	off := false
	cfg.Analysis.HandRanks = &off

	runner := NewRunner(zerolog.New(io.Discard), cfg)
	result, err := runner.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, result.Hands, 1)
	for _, reveal := range result.Hands[0].Showdown {
		assert.Empty(t, reveal.HandRank)
	}
}

func TestProcessDirNoMatches(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(zerolog.New(io.Discard), testConfig(dir))
	_, err := runner.ProcessDir(context.Background(), dir)
	assert.Error(t, err)
}

func TestProcessFileMissingLog(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(zerolog.New(io.Discard), testConfig(dir))
	_, err := runner.ProcessFile(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
