package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lox/pokernow/internal/fileutil"
	"github.com/lox/pokernow/internal/handlog"
)

// Output file names within a session's output directory.
const (
	EnhancedHandsFile = "enhanced_hands.json"
	StatisticsFile    = "game_statistics.json"
	SummaryFile       = "game_summary.txt"
)

// WriteEnhancedHands writes the enriched hands for one session as JSON.
func WriteEnhancedHands(dir string, hands []*handlog.Hand) error {
	out := make([]HandJSON, 0, len(hands))
	for _, h := range hands {
		out = append(out, NewHandJSON(h))
	}
	return writeJSON(filepath.Join(dir, EnhancedHandsFile), out)
}

// WriteStatistics writes the session statistics as JSON.
func WriteStatistics(dir string, stats *SessionStats) error {
	return writeJSON(filepath.Join(dir, StatisticsFile), stats)
}

// WriteSummaryReport writes a human-readable session report.
func WriteSummaryReport(dir, logName string, stats *SessionStats) error {
	var b strings.Builder
	b.WriteString("Poker Game Analysis Report\n")
	b.WriteString("==========================\n\n")
	if logName != "" {
		fmt.Fprintf(&b, "Log File: %s\n", logName)
	}
	fmt.Fprintf(&b, "Total Hands: %d\n", stats.TotalHands)
	fmt.Fprintf(&b, "Total Players: %d\n", len(stats.Players))
	fmt.Fprintf(&b, "Total Pot Amount: %d\n", stats.TotalPot)
	fmt.Fprintf(&b, "Biggest Pot: %d\n\n", stats.BiggestPot)
	fmt.Fprintf(&b, "Players: %s\n\n", strings.Join(stats.Players, ", "))

	b.WriteString("Player Win Counts:\n")
	b.WriteString("--------------------\n")
	for _, pw := range sortedWins(stats.PlayerWins) {
		fmt.Fprintf(&b, "%s: %d wins\n", pw.player, pw.wins)
	}

	b.WriteString("\nPlayer Actions Summary:\n")
	b.WriteString("-------------------------\n")
	players := make([]string, 0, len(stats.PlayerActions))
	for player := range stats.PlayerActions {
		players = append(players, player)
	}
	sort.Strings(players)
	for _, player := range players {
		actions := stats.PlayerActions[player]
		total := 0
		kinds := make([]string, 0, len(actions))
		for kind, count := range actions {
			total += count
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		fmt.Fprintf(&b, "%s: %d total actions\n", player, total)
		for _, kind := range kinds {
			fmt.Fprintf(&b, "  %s: %d\n", kind, actions[kind])
		}
		b.WriteString("\n")
	}

	if err := fileutil.EnsureDir(dir); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	path := filepath.Join(dir, SummaryFile)
	if err := fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// WriteTableCSV writes one frequency table as CSV.
func WriteTableCSV(path string, table Table) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Header); err != nil {
		return fmt.Errorf("report: encode csv: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: encode csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report: encode csv: %w", err)
	}

	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// EncodeEnhancedHands returns the enhanced-hands JSON bytes without writing
// them, for callers that need the serialized form directly.
func EncodeEnhancedHands(hands []*handlog.Hand) ([]byte, error) {
	out := make([]HandJSON, 0, len(hands))
	for _, h := range hands {
		out = append(out, NewHandJSON(h))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encode hands: %w", err)
	}
	return data, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", filepath.Base(path), err)
	}
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
