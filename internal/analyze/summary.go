package analyze

import (
	"github.com/lox/pokernow/internal/handlog"
)

// Summarize projects a tagged hand into its read-only summary. It relies on
// the tags produced by TagHand for the preflop aggressor.
func Summarize(h *handlog.Hand) *handlog.Summary {
	s := &handlog.Summary{
		ShowdownPlayers: len(h.Showdown),
		TotalPot:        h.PotSize,
		Winner:          h.Winner,
	}

	for _, a := range h.Actions[handlog.Preflop] {
		if a.Kind != handlog.ActionRaise {
			continue
		}
		if hasTag(a, TagOpen) {
			s.PreflopAggressor = a.Player
			break
		}
	}

	for _, a := range h.Actions[handlog.Preflop] {
		if a.Kind == handlog.ActionCall {
			s.PreflopCallers = append(s.PreflopCallers, a.Player)
		}
	}

	for _, stage := range []handlog.Stage{handlog.Flop, handlog.Turn, handlog.River} {
		for _, a := range h.Actions[stage] {
			if a.Kind == handlog.ActionBet || a.Kind == handlog.ActionRaise {
				s.PostflopAggressor = a.Player
				break
			}
		}
		if s.PostflopAggressor != "" {
			break
		}
	}

	for _, stage := range handlog.Stages {
		if len(h.Actions[stage]) > 0 {
			s.StagesPlayed = append(s.StagesPlayed, stage)
		}
	}

	return s
}

// Enrich runs the full analysis over a sealed hand: tags, action lines and
// summary are attached in place.
func Enrich(h *handlog.Hand, t Tagger) {
	t.TagHand(h)
	h.ActionLines = ActionLines(h)
	h.Summary = Summarize(h)
}

func hasTag(a handlog.Action, name string) bool {
	for _, tag := range a.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}
