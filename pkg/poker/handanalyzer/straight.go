package handanalyzer

import "cardroom-server/pkg/deck"

// bestStraight returns the high card of the best five-card straight that can
// be formed from the filled ranks, or 0 if there is none. The wheel (ace
// played low under the deck's lowest rank) is the weakest straight: 5-high in
// a standard deck, 9-high in a short deck.
func bestStraight(filled map[int]bool, lowRank int) int {
	for high := deck.Ace; high >= lowRank+handSize-1; high-- {
		run := true
		for i := 0; i < handSize; i++ {
			if !filled[high-i] {
				run = false
				break
			}
		}

		if run {
			return high
		}
	}

	if filled[deck.Ace] {
		run := true
		for rank := lowRank; rank < lowRank+handSize-1; rank++ {
			if !filled[rank] {
				run = false
				break
			}
		}

		if run {
			return lowRank + handSize - 2
		}
	}

	return 0
}
