package handlog

import (
	"github.com/rs/zerolog"
)

// Resolver rewrites a raw table identifier to a display identifier before it
// is attached to a hand. The assembler treats the result as opaque and stable.
type Resolver func(raw string) string

// Builder accumulates one hand during assembly. It tracks the current stage
// so actions land in the right stage list, and is consumed by Seal.
type Builder struct {
	hand  *Hand
	stage Stage
}

func newBuilder(number int, id, dealer, timestamp string) *Builder {
	return &Builder{
		hand: &Hand{
			ID:        id,
			Number:    number,
			Dealer:    dealer,
			Stacks:    make(map[string]int),
			Timestamp: timestamp,
		},
		stage: Preflop,
	}
}

func (b *Builder) setStacks(players []string, stacks map[string]int) {
	b.hand.Players = players
	b.hand.Stacks = stacks
}

func (b *Builder) revealFlop(cards []string) {
	b.stage = Flop
	b.hand.FlopCards = cards
}

func (b *Builder) revealTurn(card string) {
	b.stage = Turn
	b.hand.TurnCard = card
}

func (b *Builder) revealRiver(card string) {
	b.stage = River
	b.hand.RiverCard = card
}

func (b *Builder) addShowdown(reveal ShowdownReveal) {
	b.hand.Showdown = append(b.hand.Showdown, reveal)
}

func (b *Builder) addAction(player string, kind ActionKind, amount *int, timestamp string) {
	b.hand.Actions[b.stage] = append(b.hand.Actions[b.stage], Action{
		Player:    player,
		Kind:      kind,
		Amount:    amount,
		Stage:     b.stage,
		Timestamp: timestamp,
	})
}

func (b *Builder) recordWin(player string, amount int) {
	b.hand.Winner = player
	b.hand.WinningAmount = &amount
	b.hand.PotSize = amount
}

func (b *Builder) recordReturn(amount int) {
	// An uncalled bet handed back after the pot was collected was never part
	// of the contested pot.
	if b.hand.PotSize >= amount {
		b.hand.PotSize -= amount
	}
}

// Seal finishes assembly and returns the immutable hand.
func (b *Builder) Seal() *Hand {
	return b.hand
}

// Assembler consumes classified entries in chronological order and produces
// sealed hands. Entries must arrive sorted by their upstream sequence
// position; the assembler trusts that ordering and does not verify it.
type Assembler struct {
	logger  zerolog.Logger
	resolve Resolver

	hands []*Hand
	cur   *Builder
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithResolver installs an identifier resolver applied to every player name
// before it is attached to a hand.
func WithResolver(r Resolver) AssemblerOption {
	return func(a *Assembler) {
		if r != nil {
			a.resolve = r
		}
	}
}

// NewAssembler creates an assembler. The logger is only used at debug level.
func NewAssembler(logger zerolog.Logger, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		logger:  logger,
		resolve: func(raw string) string { return raw },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process feeds one classified entry into the state machine. Events arriving
// with no hand in progress are discarded; a hand-start while a hand is in
// progress seals the current hand first.
func (a *Assembler) Process(e Entry) {
	if e.Kind == EntryHandStart {
		a.sealCurrent()
		a.cur = newBuilder(e.HandNumber, e.HandID, a.resolve(e.Dealer), e.Timestamp)
		a.logger.Debug().Int("hand", e.HandNumber).Str("id", e.HandID).Msg("starting hand")
		return
	}

	if a.cur == nil {
		if e.Kind != EntryUnrecognized {
			a.logger.Debug().Stringer("kind", e.Kind).Msg("discarding entry outside any hand")
		}
		return
	}

	switch e.Kind {
	case EntryHandEnd:
		// Sealing happens on the next hand start or at end of stream.

	case EntryStacks:
		players := make([]string, 0, len(e.Players))
		stacks := make(map[string]int, len(e.Stacks))
		for _, raw := range e.Players {
			name := a.resolve(raw)
			players = append(players, name)
			stacks[name] = e.Stacks[raw]
		}
		a.cur.setStacks(players, stacks)

	case EntryFlop:
		a.cur.revealFlop(e.Cards)

	case EntryTurn:
		a.cur.revealTurn(firstCard(e.Cards))

	case EntryRiver:
		a.cur.revealRiver(firstCard(e.Cards))

	case EntryShowdown:
		a.cur.addShowdown(ShowdownReveal{
			Player:    a.resolve(e.Player),
			HoleCards: e.HoleCards,
		})

	case EntryAction:
		a.cur.addAction(a.resolve(e.Player), e.Action, e.Amount, e.Timestamp)

	case EntryPotWin:
		if e.Amount != nil {
			a.cur.recordWin(a.resolve(e.Player), *e.Amount)
		}

	case EntryBetReturn:
		if e.Amount != nil {
			a.cur.recordReturn(*e.Amount)
		}
	}
}

// Finish seals any in-progress hand and returns all hands assembled so far,
// in stream order.
func (a *Assembler) Finish() []*Hand {
	a.sealCurrent()
	return a.hands
}

func (a *Assembler) sealCurrent() {
	if a.cur == nil {
		return
	}
	a.hands = append(a.hands, a.cur.Seal())
	a.cur = nil
}

func firstCard(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return cards[0]
}
