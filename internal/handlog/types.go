// Package handlog reconstructs structured poker hands from PokerNow-style
// free-text log entries. It contains the data model, the entry classifier and
// the hand assembler; tagging and encoding of assembled hands live in the
// analyze package.
package handlog

// Stage is one of the four betting rounds of a hand, in play order.
type Stage int

const (
	Preflop Stage = iota
	Flop
	Turn
	River

	StageCount = 4
)

// Stages lists all stages in play order.
var Stages = [StageCount]Stage{Preflop, Flop, Turn, River}

func (s Stage) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// ActionKind is the kind of move a player made.
type ActionKind int

const (
	ActionBlind ActionKind = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

func (k ActionKind) String() string {
	switch k {
	case ActionBlind:
		return "blind"
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "all-in"
	default:
		return "unknown"
	}
}

// Tag is a tactical label attached to an action by the tagger.
type Tag struct {
	Name        string
	Description string
	Confidence  float64 // in [0,1]
}

// Action is one player's move within a hand. Amount is nil when the source
// entry carried no parsable amount.
type Action struct {
	Player    string
	Kind      ActionKind
	Amount    *int
	Stage     Stage
	Tags      []Tag
	Timestamp string
}

// ShowdownReveal records a player voluntarily exposing hole cards.
// HandRank is an optional human description filled in after assembly.
type ShowdownReveal struct {
	Player    string
	HoleCards []string
	HandRank  string
}

// Summary is a derived, read-only view over a tagged hand.
type Summary struct {
	PreflopAggressor  string
	PreflopCallers    []string
	PostflopAggressor string
	ShowdownPlayers   int
	TotalPot          int
	Winner            string
	StagesPlayed      []Stage
}

// Hand is one complete deal. It is mutable only through a Builder during
// assembly; once sealed it is never modified except for the derived fields
// (Tags on actions, ActionLines, Summary, showdown HandRank) attached by the
// analysis passes.
type Hand struct {
	ID     string
	Number int
	Dealer string

	Players []string
	Stacks  map[string]int

	Actions [StageCount][]Action

	FlopCards []string
	TurnCard  string
	RiverCard string

	Showdown []ShowdownReveal

	PotSize       int
	Winner        string
	WinningAmount *int

	Timestamp string

	// Derived by the analysis passes.
	ActionLines map[string]string
	Summary     *Summary
}

// StageActions returns the action list for the given stage.
func (h *Hand) StageActions(s Stage) []Action {
	return h.Actions[s]
}

// AllActions returns every action across all stages in chronological order.
func (h *Hand) AllActions() []Action {
	out := make([]Action, 0, len(h.Actions[Preflop])+len(h.Actions[Flop])+len(h.Actions[Turn])+len(h.Actions[River]))
	for _, stage := range Stages {
		out = append(out, h.Actions[stage]...)
	}
	return out
}

// CommunityCards returns the full board in reveal order.
func (h *Hand) CommunityCards() []string {
	cards := make([]string, 0, 5)
	cards = append(cards, h.FlopCards...)
	if h.TurnCard != "" {
		cards = append(cards, h.TurnCard)
	}
	if h.RiverCard != "" {
		cards = append(cards, h.RiverCard)
	}
	return cards
}

// BigBlind returns the largest blind posted preflop, or 0 when the hand has
// no blind postings with amounts.
func (h *Hand) BigBlind() int {
	bb := 0
	for _, a := range h.Actions[Preflop] {
		if a.Kind == ActionBlind && a.Amount != nil && *a.Amount > bb {
			bb = *a.Amount
		}
	}
	return bb
}
