package handrank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	for _, s := range []string{"A♠", "K♥", "Q♦", "J♣", "10♠", "T♠", "2♥", "9♦", "Qh", "Tc"} {
		_, err := ParseCard(s)
		assert.NoError(t, err, "card %q", s)
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "♠", "X♠", "11♠", "Qx"} {
		_, err := ParseCard(s)
		assert.Error(t, err, "card %q", s)
	}
}

func TestDescribeFullHouse(t *testing.T) {
	desc, err := Describe(
		[]string{"A♠", "A♥"},
		[]string{"A♦", "K♠", "K♥", "2♣", "7♦"},
	)
	require.NoError(t, err)
	assert.NotEmpty(t, desc)
}

func TestDescribeRequiresCompleteBoard(t *testing.T) {
	_, err := Describe([]string{"A♠", "A♥"}, []string{"A♦", "K♠", "K♥"})
	assert.Error(t, err)

	_, err = Describe([]string{"A♠"}, []string{"A♦", "K♠", "K♥", "2♣", "7♦"})
	assert.Error(t, err)
}
