// Package handrank produces human descriptions of showdown hands ("pair of
// tens", "flush") from card strings as they appear in PokerNow logs.
package handrank

import (
	"fmt"
	"strings"

	"github.com/paulhankin/poker"
)

// ParseCard converts a log card like "Q♥" or "10♦" (letter suits "Qh" are
// accepted too) into a library card.
func ParseCard(s string) (poker.Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("handrank: card %q too short", s)
	}

	runes := []rune(s)
	suitRune := runes[len(runes)-1]
	rankToken := string(runes[:len(runes)-1])

	var suit poker.Suit
	switch suitRune {
	case '♣', 'c':
		suit = poker.Club
	case '♦', 'd':
		suit = poker.Diamond
	case '♥', 'h':
		suit = poker.Heart
	case '♠', 's':
		suit = poker.Spade
	default:
		return 0, fmt.Errorf("handrank: card %q has unknown suit", s)
	}

	var rank poker.Rank
	switch rankToken {
	case "A":
		rank = 1
	case "K":
		rank = 13
	case "Q":
		rank = 12
	case "J":
		rank = 11
	case "T", "10":
		rank = 10
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = poker.Rank(rankToken[0] - '0')
	default:
		return 0, fmt.Errorf("handrank: card %q has unknown rank", s)
	}

	card, err := poker.MakeCard(suit, rank)
	if err != nil {
		return 0, fmt.Errorf("handrank: card %q: %w", s, err)
	}
	return card, nil
}

// Describe returns a description of the best hand a player makes from hole
// cards plus the full board. It requires two hole cards and a complete
// five-card board; anything less returns an error so callers can skip the
// description rather than guess.
func Describe(hole, board []string) (string, error) {
	if len(hole) != 2 {
		return "", fmt.Errorf("handrank: need 2 hole cards, have %d", len(hole))
	}
	if len(board) != 5 {
		return "", fmt.Errorf("handrank: need a complete board, have %d cards", len(board))
	}

	cards := make([]poker.Card, 0, 7)
	for _, s := range append(append([]string{}, hole...), board...) {
		card, err := ParseCard(s)
		if err != nil {
			return "", err
		}
		cards = append(cards, card)
	}

	desc, err := poker.Describe(cards)
	if err != nil {
		return "", fmt.Errorf("handrank: describe: %w", err)
	}
	return desc, nil
}
