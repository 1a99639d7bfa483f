package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func sizeLabel(size int) string {
	return fmt.Sprintf("%dp", size)
}

func ratioLabel(count, hands int) string {
	if count == 0 {
		return "-"
	}
	if hands == 0 {
		return fmt.Sprintf("%d/?", count)
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", count, hands, float64(count)/float64(hands)*100)
}

// RenderTable writes a frequency table as an aligned, styled text table.
func RenderTable(w io.Writer, table Table) {
	fmt.Fprintln(w, titleStyle.Render(table.Title))

	widths := make([]int, len(table.Header))
	for i, cell := range table.Header {
		widths[i] = lipgloss.Width(cell)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	fmt.Fprintln(w, headerStyle.Render(formatRow(table.Header, widths)))
	for _, row := range table.Rows {
		fmt.Fprintln(w, formatRow(row, widths))
	}
	fmt.Fprintln(w)
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := 0
		if i < len(widths) {
			pad = widths[i] - lipgloss.Width(cell)
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	return strings.Join(parts, "  ")
}

// RenderSessionStats writes the session summary in readable form.
func RenderSessionStats(w io.Writer, logName string, stats *SessionStats) {
	fmt.Fprintln(w, titleStyle.Render("Session summary"))
	if logName != "" {
		fmt.Fprintln(w, dimStyle.Render("log: "+logName))
	}
	fmt.Fprintf(w, "hands: %d  players: %d  total pot: %d  biggest pot: %d\n",
		stats.TotalHands, len(stats.Players), stats.TotalPot, stats.BiggestPot)

	if len(stats.PlayerWins) > 0 {
		fmt.Fprintln(w, headerStyle.Render("wins"))
		for _, pw := range sortedWins(stats.PlayerWins) {
			fmt.Fprintf(w, "  %s: %d\n", pw.player, pw.wins)
		}
	}
	fmt.Fprintln(w)
}

type playerWins struct {
	player string
	wins   int
}

func sortedWins(wins map[string]int) []playerWins {
	out := make([]playerWins, 0, len(wins))
	for player, n := range wins {
		out = append(out, playerWins{player, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].wins != out[j].wins {
			return out[i].wins > out[j].wins
		}
		return out[i].player < out[j].player
	})
	return out
}
