package holdem

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/action"
	"cardroom-server/pkg/poker/lock"
	"cardroom-server/pkg/poker/potmanager"
	"cardroom-server/pkg/poker/turn"
)

// State is a serializable snapshot of the table for persistence and for the
// client feed. Cards are encoded in the 2-character persistence format.
type State struct {
	Phase          turn.Phase          `json:"phase"`
	Community      []string            `json:"community"`
	Pot            int                 `json:"pot"`
	CurrentBet     int                 `json:"currentBet"`
	MinRaise       int                 `json:"minRaise"`
	DealerSeat     int                 `json:"dealerSeat"`
	CurrentActor   int                 `json:"currentActor"`
	SidePots       potmanager.SidePots `json:"sidePots"`
	PendingAdvance bool                `json:"pendingAdvance"`
	Players        []*PlayerState      `json:"players"`
	Version        lock.Version        `json:"version"`
}

// PlayerState is one player's view-dependent slice of the state. Hole cards
// are only present for the viewer's own seat or once the hand reaches
// showdown.
type PlayerState struct {
	ID         int64       `json:"playerId"`
	Seat       int         `json:"seat"`
	Chips      int         `json:"chips"`
	Bet        int         `json:"bet"`
	TotalBet   int         `json:"totalBet"`
	Folded     bool        `json:"folded"`
	AllIn      bool        `json:"allIn"`
	LastAction action.Type `json:"lastAction,omitempty"`
	HoleCards  []string    `json:"holeCards,omitempty"`
	Result     string      `json:"result,omitempty"`
	Winnings   int         `json:"winnings,omitempty"`
}

// State returns the table snapshot as seen by viewerID. Pass 0 for the
// spectator view, which never includes hole cards before showdown.
func (g *Game) State(viewerID int64) *State {
	showdown := g.phase == turn.PhaseShowdown || g.phase == turn.PhaseEnded

	players := make([]*PlayerState, len(g.players))
	for i, p := range g.players {
		ps := &PlayerState{
			ID:         p.ID,
			Seat:       p.Seat,
			Chips:      p.chips,
			Bet:        p.bet,
			TotalBet:   p.totalBet,
			Folded:     p.folded,
			AllIn:      p.allIn,
			LastAction: p.lastAction,
			Result:     string(p.result),
			Winnings:   p.winnings,
		}

		reveal := p.ID == viewerID || (showdown && !p.folded)
		if reveal && len(p.holeCards) > 0 {
			ps.HoleCards = encodeCards(p.holeCards)
		}

		players[i] = ps
	}

	return &State{
		Phase:          g.phase,
		Community:      encodeCards(g.community),
		Pot:            g.pot,
		CurrentBet:     g.currentBet,
		MinRaise:       g.minRaise,
		DealerSeat:     g.dealerSeat,
		CurrentActor:   g.currentActor,
		SidePots:       g.sidePots,
		PendingAdvance: g.pendingAdvance,
		Players:        players,
		Version:        g.Version(),
	}
}

func encodeCards(cards deck.Hand) []string {
	encoded := make([]string, len(cards))
	for i, c := range cards {
		encoded[i] = deck.CardToString(c)
	}

	return encoded
}
