package report

import (
	"sort"

	"github.com/lox/pokernow/internal/handlog"
)

// SessionStats aggregates basic facts across one session's hands.
type SessionStats struct {
	TotalHands    int                       `json:"total_hands"`
	Players       []string                  `json:"players"`
	TotalPot      int                       `json:"total_pot"`
	BiggestPot    int                       `json:"biggest_pot"`
	PlayerWins    map[string]int            `json:"player_wins"`
	PlayerActions map[string]map[string]int `json:"player_actions"`
}

// Collect computes session statistics over sealed hands.
func Collect(hands []*handlog.Hand) *SessionStats {
	stats := &SessionStats{
		PlayerWins:    make(map[string]int),
		PlayerActions: make(map[string]map[string]int),
	}

	seen := make(map[string]bool)
	for _, h := range hands {
		stats.TotalHands++
		for _, player := range h.Players {
			if !seen[player] {
				seen[player] = true
				stats.Players = append(stats.Players, player)
			}
		}

		if h.PotSize > 0 {
			stats.TotalPot += h.PotSize
			if h.PotSize > stats.BiggestPot {
				stats.BiggestPot = h.PotSize
			}
		}
		if h.Winner != "" {
			stats.PlayerWins[h.Winner]++
		}

		for _, a := range h.AllActions() {
			counts, ok := stats.PlayerActions[a.Player]
			if !ok {
				counts = make(map[string]int)
				stats.PlayerActions[a.Player] = counts
			}
			counts[a.Kind.String()]++
		}
	}

	sort.Strings(stats.Players)
	return stats
}

// frequencyCell accumulates one player's activity at one table size.
type frequencyCell struct {
	totalHands int
	tagCounts  map[string]int
	lineCounts map[string]int
}

// Frequency aggregates tagged-action and action-line occurrences per player,
// grouped by how many players were dealt into the hand.
type Frequency struct {
	cells map[string]map[int]*frequencyCell
}

// NewFrequency creates an empty frequency accumulator.
func NewFrequency() *Frequency {
	return &Frequency{cells: make(map[string]map[int]*frequencyCell)}
}

// AddHands folds a session's enriched hands into the accumulator. Hands may
// come from multiple sessions; players are identified by display name.
func (f *Frequency) AddHands(hands []*handlog.Hand) {
	for _, h := range hands {
		size := len(h.Players)
		for _, player := range h.Players {
			cell := f.cell(player, size)
			cell.totalHands++
			if line, ok := h.ActionLines[player]; ok && line != "" {
				cell.lineCounts[line]++
			}
		}
		for _, a := range h.AllActions() {
			for _, tag := range a.Tags {
				f.cell(a.Player, size).tagCounts[tag.Name]++
			}
		}
	}
}

func (f *Frequency) cell(player string, size int) *frequencyCell {
	sizes, ok := f.cells[player]
	if !ok {
		sizes = make(map[int]*frequencyCell)
		f.cells[player] = sizes
	}
	cell, ok := sizes[size]
	if !ok {
		cell = &frequencyCell{tagCounts: make(map[string]int), lineCounts: make(map[string]int)}
		sizes[size] = cell
	}
	return cell
}

// Players returns every player seen, sorted.
func (f *Frequency) Players() []string {
	players := make([]string, 0, len(f.cells))
	for player := range f.cells {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

// TableSizes returns every table size seen, ascending.
func (f *Frequency) TableSizes() []int {
	seen := make(map[int]bool)
	for _, sizes := range f.cells {
		for size := range sizes {
			seen[size] = true
		}
	}
	sizes := make([]int, 0, len(seen))
	for size := range seen {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// Tags returns every tag name seen, sorted.
func (f *Frequency) Tags() []string {
	return f.keys(func(c *frequencyCell) map[string]int { return c.tagCounts })
}

// Lines returns action lines seen at least minCount times across all
// players, most frequent first.
func (f *Frequency) Lines(minCount int) []string {
	totals := make(map[string]int)
	for _, sizes := range f.cells {
		for _, cell := range sizes {
			for line, count := range cell.lineCounts {
				totals[line] += count
			}
		}
	}
	lines := make([]string, 0, len(totals))
	for line, count := range totals {
		if count >= minCount {
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if totals[lines[i]] != totals[lines[j]] {
			return totals[lines[i]] > totals[lines[j]]
		}
		return lines[i] < lines[j]
	})
	return lines
}

func (f *Frequency) keys(pick func(*frequencyCell) map[string]int) []string {
	seen := make(map[string]bool)
	for _, sizes := range f.cells {
		for _, cell := range sizes {
			for key := range pick(cell) {
				seen[key] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Table is a rendered frequency table: one row per player, one column per
// table size, cells showing occurrences over hands played at that size.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// TagTable builds the frequency table for one tag.
func (f *Frequency) TagTable(tag string) Table {
	return f.table("tag: "+tag, func(c *frequencyCell) int { return c.tagCounts[tag] })
}

// LineTable builds the frequency table for one action line.
func (f *Frequency) LineTable(line string) Table {
	return f.table("line: "+line, func(c *frequencyCell) int { return c.lineCounts[line] })
}

func (f *Frequency) table(title string, count func(*frequencyCell) int) Table {
	sizes := f.TableSizes()

	table := Table{Title: title, Header: make([]string, 0, len(sizes)+2)}
	table.Header = append(table.Header, "player")
	for _, size := range sizes {
		table.Header = append(table.Header, sizeLabel(size))
	}
	table.Header = append(table.Header, "total")

	type scored struct {
		row  []string
		freq float64
	}
	var rows []scored

	for _, player := range f.Players() {
		row := make([]string, 0, len(sizes)+2)
		row = append(row, player)
		totalCount, totalHands := 0, 0
		for _, size := range sizes {
			cell, ok := f.cells[player][size]
			if !ok || cell.totalHands == 0 {
				row = append(row, "-")
				continue
			}
			n := count(cell)
			totalCount += n
			totalHands += cell.totalHands
			row = append(row, ratioLabel(n, cell.totalHands))
		}
		if totalCount == 0 {
			continue
		}
		row = append(row, ratioLabel(totalCount, totalHands))
		if totalHands == 0 {
			totalHands = 1
		}
		rows = append(rows, scored{row: row, freq: float64(totalCount) / float64(totalHands)})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].freq > rows[j].freq })
	for _, r := range rows {
		table.Rows = append(table.Rows, r.row)
	}
	return table
}
