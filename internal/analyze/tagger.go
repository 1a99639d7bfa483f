// Package analyze derives tactical labels, compact action lines and hand
// summaries from assembled hands. Every pass operates on a sealed hand with
// accumulators local to that pass; re-running a pass over the same hand
// produces identical results.
package analyze

import (
	"fmt"

	"github.com/lox/pokernow/internal/handlog"
)

// Tag names produced by the tagger.
const (
	TagOpen       = "open"
	TagThreeBet   = "3bet"
	TagFourBet    = "4bet"
	TagLimp       = "limp"
	TagCBet       = "cbet"
	TagDonk       = "donk"
	TagCheckRaise = "check-raise"
)

// DefaultLimpThreshold is the fallback "no big blind is larger than this"
// amount used when a hand has no recorded blind postings.
const DefaultLimpThreshold = 100

// Tagger attaches tactical labels to the actions of a sealed hand.
type Tagger struct {
	// LimpThreshold caps the call amount still considered a limp when the
	// hand carries no blind postings to compare against. Zero means
	// DefaultLimpThreshold.
	LimpThreshold int
}

// TagHand populates the Tags of every action in the hand. Existing tags are
// replaced, so tagging is idempotent. It never fails; incomplete hands are
// tagged from whatever data is present.
func (t Tagger) TagHand(h *handlog.Hand) {
	aggressor := t.tagPreflop(h)
	for _, stage := range []handlog.Stage{handlog.Flop, handlog.Turn, handlog.River} {
		tagPostflop(h.Actions[stage], aggressor)
	}
}

// tagPreflop runs the raise-counter pass and returns the preflop aggressor,
// if any. Blind postings never receive tags and never advance the counter.
func (t Tagger) tagPreflop(h *handlog.Hand) string {
	limpMax := h.BigBlind()
	confidence := 1.0
	if limpMax == 0 {
		// No blinds recorded for this hand: fall back to the configured
		// threshold and mark the resulting limp tag as a guess.
		limpMax = t.LimpThreshold
		if limpMax == 0 {
			limpMax = DefaultLimpThreshold
		}
		confidence = 0.7
	}

	aggressor := ""
	raises := 0
	nonBlind := 0

	actions := h.Actions[handlog.Preflop]
	for i := range actions {
		a := &actions[i]
		if a.Kind == handlog.ActionBlind {
			a.Tags = nil
			continue
		}
		a.Tags = nil

		switch a.Kind {
		case handlog.ActionRaise:
			raises++
			switch raises {
			case 1:
				a.Tags = append(a.Tags, handlog.Tag{Name: TagOpen, Description: "first raise of the hand", Confidence: 1})
				aggressor = a.Player
			case 2:
				a.Tags = append(a.Tags, handlog.Tag{Name: TagThreeBet, Description: "re-raise over the open", Confidence: 1})
			case 3:
				a.Tags = append(a.Tags, handlog.Tag{Name: TagFourBet, Description: "re-raise over the 3bet", Confidence: 1})
			default:
				a.Tags = append(a.Tags, handlog.Tag{
					Name:        fmt.Sprintf("%dbet", raises+1),
					Description: fmt.Sprintf("raise number %d of the preflop round", raises),
					Confidence:  1,
				})
			}

		case handlog.ActionCall:
			if nonBlind == 0 && a.Amount != nil && *a.Amount <= limpMax {
				a.Tags = append(a.Tags, handlog.Tag{
					Name:        TagLimp,
					Description: "flat call of the big blind as the first voluntary action",
					Confidence:  confidence,
				})
			}
		}
		nonBlind++
	}

	return aggressor
}

// tagPostflop labels one postflop stage. The pending-checker map is local to
// the stage: checking marks a player, and a later bet or raise by a marked
// player in the same stage is a check-raise.
func tagPostflop(actions []handlog.Action, aggressor string) {
	pending := make(map[string]bool)

	for i := range actions {
		a := &actions[i]
		a.Tags = nil

		switch a.Kind {
		case handlog.ActionBet:
			if i == 0 {
				if aggressor != "" && a.Player == aggressor {
					a.Tags = append(a.Tags, handlog.Tag{Name: TagCBet, Description: "continuation bet by the preflop aggressor", Confidence: 1})
				} else {
					a.Tags = append(a.Tags, handlog.Tag{Name: TagDonk, Description: "lead bet into the preflop aggressor", Confidence: 1})
				}
			} else if pending[a.Player] {
				a.Tags = append(a.Tags, checkRaiseTag())
				delete(pending, a.Player)
			}

		case handlog.ActionRaise:
			if pending[a.Player] {
				a.Tags = append(a.Tags, checkRaiseTag())
				delete(pending, a.Player)
			}

		case handlog.ActionCheck:
			pending[a.Player] = true
		}
	}
}

func checkRaiseTag() handlog.Tag {
	return handlog.Tag{Name: TagCheckRaise, Description: "raise after checking earlier in the stage", Confidence: 1}
}
