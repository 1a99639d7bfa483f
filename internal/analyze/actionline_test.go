package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokernow/internal/handlog"
)

func TestActionLinesSymbols(t *testing.T) {
	h := newHand(
		act("P1", handlog.ActionBlind, 5),
		act("P1", handlog.ActionRaise, 30),
		act("P2", handlog.ActionCall, 30),
	)
	withStage(h, handlog.Flop,
		act("P2", handlog.ActionCheck, -1),
		act("P1", handlog.ActionBet, 40),
		act("P2", handlog.ActionCall, 40),
	)
	withStage(h, handlog.Turn,
		act("P2", handlog.ActionCheck, -1),
		act("P1", handlog.ActionAllIn, 500),
		act("P2", handlog.ActionFold, -1),
	)

	lines := ActionLines(h)
	assert.Equal(t, "R/B/A", lines["P1"])
	assert.Equal(t, "C/XC/XF", lines["P2"])
}

// Scenario E: stages without actions from the player are omitted, not padded.
func TestActionLinesOmitsEmptyStages(t *testing.T) {
	h := newHand(act("P1", handlog.ActionRaise, 30))
	withStage(h, handlog.Flop, act("P2", handlog.ActionBet, 10))
	withStage(h, handlog.River,
		act("P2", handlog.ActionBet, 10),
		act("P1", handlog.ActionFold, -1),
	)

	lines := ActionLines(h)
	require.Contains(t, lines, "P1")
	assert.Equal(t, "R/F", lines["P1"])
	assert.Equal(t, 1, strings.Count(lines["P1"], "/"), "two segments, one separator")
}

func TestActionLinesBlindOnlyPlayerGetsEmptyLine(t *testing.T) {
	h := newHand(
		act("P1", handlog.ActionBlind, 5),
		act("P2", handlog.ActionBlind, 10),
		act("P3", handlog.ActionRaise, 30),
		act("P2", handlog.ActionFold, -1),
	)

	lines := ActionLines(h)
	assert.Equal(t, "", lines["P1"])
	assert.Equal(t, "F", lines["P2"])
	assert.Equal(t, "R", lines["P3"])
}

// Splitting a line on "/" recovers exactly the stages the player acted in,
// in stage order.
func TestActionLinesFaithfulProjection(t *testing.T) {
	h := newHand(
		act("P1", handlog.ActionBlind, 5),
		act("P1", handlog.ActionCall, 10),
	)
	withStage(h, handlog.Turn, act("P1", handlog.ActionCheck, -1))
	withStage(h, handlog.River,
		act("P1", handlog.ActionCheck, -1),
		act("P1", handlog.ActionCall, 50),
	)

	segments := strings.Split(ActionLines(h)["P1"], "/")
	require.Len(t, segments, 3)
	assert.Equal(t, []string{"C", "X", "XC"}, segments)
}
