package analyze

import (
	"strings"

	"github.com/lox/pokernow/internal/handlog"
)

// actionSymbols maps each action kind to its one-character line symbol.
// Blind postings map to nothing and are dropped from lines.
var actionSymbols = map[handlog.ActionKind]string{
	handlog.ActionCheck: "X",
	handlog.ActionBet:   "B",
	handlog.ActionCall:  "C",
	handlog.ActionFold:  "F",
	handlog.ActionRaise: "R",
	handlog.ActionAllIn: "A",
}

// ActionLines produces one compact notation string per player appearing in
// the hand's stage lists. Each stage a player acted in contributes one
// segment of symbols in action order; stages without actions from the player
// are omitted entirely, so segment position does not always identify a stage.
// Players whose only actions are blind postings get an empty line.
func ActionLines(h *handlog.Hand) map[string]string {
	players := make([]string, 0, len(h.Players))
	seen := make(map[string]bool)
	for _, stage := range handlog.Stages {
		for _, a := range h.Actions[stage] {
			if !seen[a.Player] {
				seen[a.Player] = true
				players = append(players, a.Player)
			}
		}
	}

	lines := make(map[string]string, len(players))
	for _, player := range players {
		var segments []string
		for _, stage := range handlog.Stages {
			var b strings.Builder
			for _, a := range h.Actions[stage] {
				if a.Player != player {
					continue
				}
				b.WriteString(actionSymbols[a.Kind])
			}
			if b.Len() > 0 {
				segments = append(segments, b.String())
			}
		}
		lines[player] = strings.Join(segments, "/")
	}
	return lines
}
