package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lox/pokernow/internal/handlog"
)

// Hole-card categories, in display order. A showdown reveal falls into
// exactly one category.
var RangeCategories = []string{
	"Premium Pairs",
	"Medium Pairs",
	"Small Pairs",
	"Strong Aces",
	"Medium Aces",
	"Weak Aces",
	"Suited Connectors",
	"Broadway",
	"Connectors",
	"Others",
}

var rankValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"T": 10, "10": 10, "J": 11, "Q": 12, "K": 13, "A": 14,
}

var rankLetters = map[int]string{
	2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7", 8: "8", 9: "9",
	10: "T", 11: "J", 12: "Q", 13: "K", 14: "A",
}

// splitCard separates a log card like "Q♥" or "10♦" into rank value and suit.
func splitCard(card string) (rank int, suit string) {
	runes := []rune(strings.TrimSpace(card))
	if len(runes) < 2 {
		return 0, ""
	}
	return rankValues[string(runes[:len(runes)-1])], string(runes[len(runes)-1])
}

// CategorizeHoleCards buckets two hole cards into a named range category.
// Anything that is not exactly two parsable cards is "Unknown".
func CategorizeHoleCards(hole []string) string {
	if len(hole) != 2 {
		return "Unknown"
	}
	rank1, suit1 := splitCard(hole[0])
	rank2, suit2 := splitCard(hole[1])
	if rank1 == 0 || rank2 == 0 {
		return "Unknown"
	}
	if rank1 < rank2 {
		rank1, rank2 = rank2, rank1
	}
	suited := suit1 == suit2
	gap := rank1 - rank2

	switch {
	case gap == 0 && rank1 >= 11:
		return "Premium Pairs"
	case gap == 0 && rank1 >= 7:
		return "Medium Pairs"
	case gap == 0:
		return "Small Pairs"
	case rank1 == 14 && rank2 >= 11:
		return "Strong Aces"
	case rank1 == 14 && rank2 >= 7:
		return "Medium Aces"
	case rank1 == 14:
		return "Weak Aces"
	case rank2 >= 10 && gap <= 3 && suited:
		return "Suited Connectors"
	case rank2 >= 10:
		return "Broadway"
	case suited && gap <= 3:
		return "Suited Connectors"
	case gap <= 1:
		return "Connectors"
	default:
		return "Others"
	}
}

// NormalizeHoleCards renders two hole cards in standard shorthand: "AA",
// "AKs", "T9o". Unparsable input comes back as "Unknown".
func NormalizeHoleCards(hole []string) string {
	if len(hole) != 2 {
		return "Unknown"
	}
	rank1, suit1 := splitCard(hole[0])
	rank2, suit2 := splitCard(hole[1])
	if rank1 == 0 || rank2 == 0 {
		return "Unknown"
	}
	if rank1 < rank2 {
		rank1, rank2 = rank2, rank1
	}
	switch {
	case rank1 == rank2:
		return rankLetters[rank1] + rankLetters[rank2]
	case suit1 == suit2:
		return rankLetters[rank1] + rankLetters[rank2] + "s"
	default:
		return rankLetters[rank1] + rankLetters[rank2] + "o"
	}
}

// RangeDistribution accumulates showdown hole-card categories per player:
// overall, per action tag and per action line. Only hands that reached
// showdown contribute.
type RangeDistribution struct {
	players map[string]map[string]int
	tags    map[string]map[string]map[string]int
	lines   map[string]map[string]map[string]int
}

// NewRangeDistribution creates an empty accumulator.
func NewRangeDistribution() *RangeDistribution {
	return &RangeDistribution{
		players: make(map[string]map[string]int),
		tags:    make(map[string]map[string]map[string]int),
		lines:   make(map[string]map[string]map[string]int),
	}
}

// AddHands folds enriched hands into the distribution. Each showdown reveal
// counts once overall and once per action line, and once per tag occurrence
// on that player's actions in the hand.
func (r *RangeDistribution) AddHands(hands []*handlog.Hand) {
	for _, h := range hands {
		for _, reveal := range h.Showdown {
			category := CategorizeHoleCards(reveal.HoleCards)
			if category == "Unknown" {
				continue
			}
			bump(r.players, reveal.Player, category)

			line, ok := h.ActionLines[reveal.Player]
			if !ok {
				line = "unknown"
			}
			bumpGrouped(r.lines, line, reveal.Player, category)

			for _, a := range h.AllActions() {
				if a.Player != reveal.Player {
					continue
				}
				for _, tag := range a.Tags {
					bumpGrouped(r.tags, tag.Name, reveal.Player, category)
				}
			}
		}
	}
}

func bump(m map[string]map[string]int, player, category string) {
	counts, ok := m[player]
	if !ok {
		counts = make(map[string]int)
		m[player] = counts
	}
	counts[category]++
}

func bumpGrouped(m map[string]map[string]map[string]int, key, player, category string) {
	group, ok := m[key]
	if !ok {
		group = make(map[string]map[string]int)
		m[key] = group
	}
	bump(group, player, category)
}

// Tags returns every tag with showdown samples, sorted.
func (r *RangeDistribution) Tags() []string {
	return groupKeys(r.tags)
}

// Lines returns every action line with showdown samples, sorted.
func (r *RangeDistribution) Lines() []string {
	return groupKeys(r.lines)
}

func groupKeys(m map[string]map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// PlayerTable builds the overall showdown range table: one row per player,
// one column per category.
func (r *RangeDistribution) PlayerTable() Table {
	return rangeTable("range: all showdowns", r.players)
}

// TagTable builds the range table for hands where the player's actions
// carried the given tag.
func (r *RangeDistribution) TagTable(tag string) Table {
	return rangeTable("range tag: "+tag, r.tags[tag])
}

// LineTable builds the range table for one action line.
func (r *RangeDistribution) LineTable(line string) Table {
	return rangeTable("range line: "+line, r.lines[line])
}

func rangeTable(title string, counts map[string]map[string]int) Table {
	table := Table{Title: title, Header: make([]string, 0, len(RangeCategories)+2)}
	table.Header = append(table.Header, "player")
	table.Header = append(table.Header, RangeCategories...)
	table.Header = append(table.Header, "total")

	type scored struct {
		row   []string
		total int
	}
	var rows []scored

	players := make([]string, 0, len(counts))
	for player := range counts {
		players = append(players, player)
	}
	sort.Strings(players)

	for _, player := range players {
		row := make([]string, 0, len(RangeCategories)+2)
		row = append(row, player)
		total := 0
		for _, category := range RangeCategories {
			n := counts[player][category]
			total += n
			if n == 0 {
				row = append(row, "-")
			} else {
				row = append(row, strconv.Itoa(n))
			}
		}
		if total == 0 {
			continue
		}
		row = append(row, strconv.Itoa(total))
		rows = append(rows, scored{row: row, total: total})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].total > rows[j].total })
	for _, r := range rows {
		table.Rows = append(table.Rows, r.row)
	}
	return table
}
