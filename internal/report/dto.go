// Package report turns enriched hands into the toolkit's output artifacts:
// enhanced-hands JSON, session statistics, frequency tables and rendered
// text reports.
package report

import (
	"github.com/lox/pokernow/internal/handlog"
)

// TagJSON mirrors one tactical label on an exported action.
type TagJSON struct {
	Tag         string  `json:"tag"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// ActionJSON is the export form of one action.
type ActionJSON struct {
	Player    string    `json:"player"`
	Action    string    `json:"action"`
	Amount    *int      `json:"amount"`
	Timestamp string    `json:"timestamp,omitempty"`
	Stage     string    `json:"stage"`
	Tags      []TagJSON `json:"tags"`
}

// ShowdownJSON is the export form of one showdown reveal.
type ShowdownJSON struct {
	Player    string   `json:"player"`
	HoleCards []string `json:"hole_cards"`
	HandRank  string   `json:"hand_rank,omitempty"`
}

// AnalysisJSON is the export form of a hand summary.
type AnalysisJSON struct {
	PreflopAggressor  string   `json:"preflop_aggressor,omitempty"`
	PreflopCallers    []string `json:"preflop_callers"`
	PostflopAggressor string   `json:"postflop_aggressor,omitempty"`
	ShowdownPlayers   int      `json:"showdown_players"`
	TotalPot          int      `json:"total_pot"`
	Winner            string   `json:"winner,omitempty"`
	StagesPlayed      []string `json:"stages_played"`
}

// HandJSON is the export form of one enriched hand.
type HandJSON struct {
	HandID       string         `json:"hand_id"`
	HandNumber   int            `json:"hand_number"`
	Dealer       string         `json:"dealer,omitempty"`
	Players      []string       `json:"players"`
	PlayerStacks map[string]int `json:"player_stacks"`

	FlopCards      []string `json:"flop_cards"`
	TurnCard       string   `json:"turn_card,omitempty"`
	RiverCard      string   `json:"river_card,omitempty"`
	CommunityCards []string `json:"community_cards"`

	PreflopActions []ActionJSON `json:"preflop_actions"`
	FlopActions    []ActionJSON `json:"flop_actions"`
	TurnActions    []ActionJSON `json:"turn_actions"`
	RiverActions   []ActionJSON `json:"river_actions"`

	Showdown []ShowdownJSON `json:"showdown"`

	PotSize       int    `json:"pot_size"`
	Winner        string `json:"winner,omitempty"`
	WinningAmount *int   `json:"winning_amount"`
	Timestamp     string `json:"timestamp,omitempty"`

	ActionLines map[string]string `json:"action_lines"`
	Analysis    *AnalysisJSON     `json:"analysis,omitempty"`
}

// NewHandJSON converts an enriched hand to its export form.
func NewHandJSON(h *handlog.Hand) HandJSON {
	out := HandJSON{
		HandID:         h.ID,
		HandNumber:     h.Number,
		Dealer:         h.Dealer,
		Players:        h.Players,
		PlayerStacks:   h.Stacks,
		FlopCards:      h.FlopCards,
		TurnCard:       h.TurnCard,
		RiverCard:      h.RiverCard,
		CommunityCards: h.CommunityCards(),
		PreflopActions: actionsJSON(h.Actions[handlog.Preflop]),
		FlopActions:    actionsJSON(h.Actions[handlog.Flop]),
		TurnActions:    actionsJSON(h.Actions[handlog.Turn]),
		RiverActions:   actionsJSON(h.Actions[handlog.River]),
		PotSize:        h.PotSize,
		Winner:         h.Winner,
		WinningAmount:  h.WinningAmount,
		Timestamp:      h.Timestamp,
		ActionLines:    h.ActionLines,
	}

	out.Showdown = make([]ShowdownJSON, 0, len(h.Showdown))
	for _, reveal := range h.Showdown {
		out.Showdown = append(out.Showdown, ShowdownJSON{
			Player:    reveal.Player,
			HoleCards: reveal.HoleCards,
			HandRank:  reveal.HandRank,
		})
	}

	if h.Summary != nil {
		stages := make([]string, 0, len(h.Summary.StagesPlayed))
		for _, stage := range h.Summary.StagesPlayed {
			stages = append(stages, stage.String())
		}
		out.Analysis = &AnalysisJSON{
			PreflopAggressor:  h.Summary.PreflopAggressor,
			PreflopCallers:    h.Summary.PreflopCallers,
			PostflopAggressor: h.Summary.PostflopAggressor,
			ShowdownPlayers:   h.Summary.ShowdownPlayers,
			TotalPot:          h.Summary.TotalPot,
			Winner:            h.Summary.Winner,
			StagesPlayed:      stages,
		}
	}

	return out
}

func actionsJSON(actions []handlog.Action) []ActionJSON {
	out := make([]ActionJSON, 0, len(actions))
	for _, a := range actions {
		tags := make([]TagJSON, 0, len(a.Tags))
		for _, tag := range a.Tags {
			tags = append(tags, TagJSON{Tag: tag.Name, Description: tag.Description, Confidence: tag.Confidence})
		}
		out = append(out, ActionJSON{
			Player:    a.Player,
			Action:    a.Kind.String(),
			Amount:    a.Amount,
			Timestamp: a.Timestamp,
			Stage:     a.Stage.String(),
			Tags:      tags,
		})
	}
	return out
}
