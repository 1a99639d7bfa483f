package handlog

import (
	"regexp"
	"strconv"
	"strings"
)

// EntryKind identifies the structural event a raw log line represents.
type EntryKind int

const (
	EntryUnrecognized EntryKind = iota
	EntryHandStart
	EntryHandEnd
	EntryStacks
	EntryFlop
	EntryTurn
	EntryRiver
	EntryShowdown
	EntryAction
	EntryPotWin
	EntryBetReturn
)

func (k EntryKind) String() string {
	switch k {
	case EntryHandStart:
		return "hand-start"
	case EntryHandEnd:
		return "hand-end"
	case EntryStacks:
		return "stacks"
	case EntryFlop:
		return "flop"
	case EntryTurn:
		return "turn"
	case EntryRiver:
		return "river"
	case EntryShowdown:
		return "showdown"
	case EntryAction:
		return "action"
	case EntryPotWin:
		return "pot-win"
	case EntryBetReturn:
		return "bet-return"
	default:
		return "unrecognized"
	}
}

// Entry is the classified form of one raw log line. Only the fields relevant
// to its Kind are populated.
type Entry struct {
	Kind      EntryKind
	Timestamp string

	// EntryHandStart
	HandNumber int
	HandID     string
	Dealer     string

	// EntryStacks; Players preserves declaration order.
	Players []string
	Stacks  map[string]int

	// EntryFlop / EntryTurn / EntryRiver
	Cards []string

	// EntryShowdown / EntryAction / EntryPotWin / EntryBetReturn
	Player    string
	HoleCards []string
	Action    ActionKind
	Amount    *int
}

var (
	handStartRe = regexp.MustCompile(`-- starting hand #(\d+)\s+\(id: (\w+)\)`)
	handEndRe   = regexp.MustCompile(`-- ending hand #(\d+)`)
	dealerRe    = regexp.MustCompile(`dealer: "([^"]+)"`)
	stacksRe    = regexp.MustCompile(`"([^"]+)"\s*\((\d+)\)`)
	bracketRe   = regexp.MustCompile(`\[([^\]]*)\]`)
	cardRe      = regexp.MustCompile(`(?:10|[AKQJT2-9])[♠♥♦♣]`)
	showdownRe  = regexp.MustCompile(`"([^"]+)" shows a (.+)`)
)

// actionPattern binds one phrase regex to the entry it produces. Patterns are
// tried in table order and the first match wins; "raises to" must appear
// before "raises by" style overlaps are resolved purely by this order.
type actionPattern struct {
	re        *regexp.Regexp
	kind      EntryKind
	action    ActionKind
	playerIdx int // capture group holding the player name
	amountIdx int // capture group holding the amount, 0 for none
}

var actionPatterns = []actionPattern{
	{regexp.MustCompile(`"([^"]+)" posts a small blind of\s*(\d+)?`), EntryAction, ActionBlind, 1, 2},
	{regexp.MustCompile(`"([^"]+)" posts a big blind of\s*(\d+)?`), EntryAction, ActionBlind, 1, 2},
	{regexp.MustCompile(`"([^"]+)" raises to\s*(\d+)?`), EntryAction, ActionRaise, 1, 2},
	{regexp.MustCompile(`"([^"]+)" raises by\s*(\d+)?`), EntryAction, ActionRaise, 1, 2},
	{regexp.MustCompile(`"([^"]+)" bets\s*(\d+)?`), EntryAction, ActionBet, 1, 2},
	{regexp.MustCompile(`"([^"]+)" calls\s*(\d+)?`), EntryAction, ActionCall, 1, 2},
	{regexp.MustCompile(`"([^"]+)" goes all-in with\s*(\d+)?`), EntryAction, ActionAllIn, 1, 2},
	{regexp.MustCompile(`"([^"]+)" folds`), EntryAction, ActionFold, 1, 0},
	{regexp.MustCompile(`"([^"]+)" checks`), EntryAction, ActionCheck, 1, 0},
	{regexp.MustCompile(`"([^"]+)" collected (\d+) from pot`), EntryPotWin, ActionKind(0), 1, 2},
	{regexp.MustCompile(`Uncalled bet of (\d+) returned to "([^"]+)"`), EntryBetReturn, ActionKind(0), 2, 1},
}

// Classify turns one raw log line into a typed entry. It never fails: lines
// matching no known shape come back as EntryUnrecognized and are dropped by
// the assembler.
func Classify(raw, timestamp string) Entry {
	e := Entry{Kind: EntryUnrecognized, Timestamp: timestamp}

	switch {
	case handStartRe.MatchString(raw):
		m := handStartRe.FindStringSubmatch(raw)
		e.Kind = EntryHandStart
		e.HandNumber, _ = strconv.Atoi(m[1])
		e.HandID = m[2]
		if dm := dealerRe.FindStringSubmatch(raw); dm != nil {
			e.Dealer = dm[1]
		}

	case handEndRe.MatchString(raw):
		e.Kind = EntryHandEnd

	case strings.Contains(raw, "Player stacks:"):
		e.Kind = EntryStacks
		e.Stacks = make(map[string]int)
		for _, m := range stacksRe.FindAllStringSubmatch(raw, -1) {
			amount, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			if _, seen := e.Stacks[m[1]]; !seen {
				e.Players = append(e.Players, m[1])
			}
			e.Stacks[m[1]] = amount
		}

	case strings.Contains(raw, "Flop:"):
		e.Kind = EntryFlop
		e.Cards = bracketCards(raw)

	case strings.Contains(raw, "Turn:"):
		e.Kind = EntryTurn
		e.Cards = firstBracketCard(raw)

	case strings.Contains(raw, "River:"):
		e.Kind = EntryRiver
		e.Cards = firstBracketCard(raw)

	case showdownRe.MatchString(raw):
		m := showdownRe.FindStringSubmatch(raw)
		e.Kind = EntryShowdown
		e.Player = m[1]
		e.HoleCards = cardRe.FindAllString(m[2], -1)

	default:
		for _, p := range actionPatterns {
			m := p.re.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			e.Kind = p.kind
			e.Action = p.action
			e.Player = m[p.playerIdx]
			if p.amountIdx > 0 && m[p.amountIdx] != "" {
				if amount, err := strconv.Atoi(m[p.amountIdx]); err == nil {
					e.Amount = &amount
				}
			}
			break
		}
	}

	return e
}

// bracketCards parses the flop's bracketed card list, e.g. "Flop: [Q♥, 6♠, 8♣]".
func bracketCards(raw string) []string {
	m := bracketRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	return cardRe.FindAllString(m[1], -1)
}

// firstBracketCard parses the single bracketed card appended on turn and
// river lines, e.g. "Turn: Q♥, 6♠, 8♣ [9♥]".
func firstBracketCard(raw string) []string {
	cards := bracketCards(raw)
	if len(cards) == 0 {
		return nil
	}
	return cards[:1]
}
