package holdem

import (
	"time"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/action"
	"cardroom-server/pkg/poker/handanalyzer"
)

type result string

const (
	resultPending result = ""
	resultFolded  result = "folded"
	resultLost    result = "lost"
	resultWon     result = "won"
)

// Player represents an individual player in a hand
type Player struct {
	ID   int64
	Seat int

	chips     int
	holeCards deck.Hand

	// bet is the player's commitment for the current betting round; totalBet
	// is their commitment for the whole hand
	bet      int
	totalBet int

	folded   bool
	allIn    bool
	hasActed bool

	lastAction   action.Type
	lastActionAt time.Time

	result   result
	winnings int

	handAnalyzer         *handanalyzer.HandRank
	handAnalyzerCacheKey string
}

func newPlayer(id int64, seat, chips int) *Player {
	return &Player{
		ID:    id,
		Seat:  seat,
		chips: chips,
	}
}

// Chips returns the player's current stack
func (p *Player) Chips() int {
	return p.chips
}

// HoleCards returns the player's hole cards
func (p *Player) HoleCards() deck.Hand {
	return p.holeCards
}

// Folded returns true if the player folded this hand
func (p *Player) Folded() bool {
	return p.folded
}

// AllIn returns true if the player is all-in this hand
func (p *Player) AllIn() bool {
	return p.allIn
}

// Eliminated returns true if the player has no chips and nothing committed
func (p *Player) Eliminated() bool {
	return p.chips == 0 && p.totalBet == 0
}

// commit moves chips from the player's stack into their current-round bet
func (p *Player) commit(amount int) {
	p.chips -= amount
	p.bet += amount
	p.totalBet += amount

	if p.chips == 0 {
		p.allIn = true
	}
}

// newHand resets the per-hand state. The chip stack persists across hands.
func (p *Player) newHand() {
	p.holeCards = make(deck.Hand, 0, 2)
	p.bet = 0
	p.totalBet = 0
	p.folded = false
	p.allIn = false
	p.hasActed = false
	p.lastAction = ""
	p.result = resultPending
	p.winnings = 0
	p.handAnalyzer = nil
	p.handAnalyzerCacheKey = ""
}

// newRound resets the per-round state after a betting round closes
func (p *Player) newRound() {
	p.bet = 0
	if !p.folded && !p.allIn {
		p.hasActed = false
	}
}

func (p *Player) getHandRank(community deck.Hand, shortDeck bool) *handanalyzer.HandRank {
	if len(p.holeCards) == 0 {
		return nil
	}

	hand := append(p.holeCards.Clone(), community...)
	key := hand.String()
	if p.handAnalyzerCacheKey != key {
		evaluate := handanalyzer.Evaluate
		if shortDeck {
			evaluate = handanalyzer.EvaluateShortDeck
		}

		hr, err := evaluate(hand)
		if err != nil {
			return nil
		}

		p.handAnalyzer = hr
		p.handAnalyzerCacheKey = key
	}

	return p.handAnalyzer
}
