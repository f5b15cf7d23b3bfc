package handanalyzer

import (
	"errors"
	"fmt"
	"sort"

	"cardroom-server/pkg/deck"
)

// ErrInvalidHand is an error when a hand cannot be evaluated (empty, too
// large, or containing duplicate cards)
var ErrInvalidHand = errors.New("invalid hand")

const handSize = 5

// HandRank is the comparable strength of a hand.
// Score is monotonic: category dominates, then tiebreak cards in descending
// significance, so two HandRanks compare by Score alone.
type HandRank struct {
	Category  Category `json:"category"`
	Tiebreaks []int    `json:"tiebreaks"`
	Score     int      `json:"score"`
}

// HandAnalyzer can analyze a hand
type HandAnalyzer struct {
	cards deck.Hand

	flush         []int
	quads         []int
	trips         []int
	pairs         []int
	straight      int
	straightFlush int
}

// Evaluate ranks a standard Hold'em hand of up to seven cards.
// Five to seven cards yield a full ranking. Fewer than five degrade to a
// best-effort high-card ranking so callers can score partial boards.
func Evaluate(cards []*deck.Card) (*HandRank, error) {
	return evaluate(cards, Standard)
}

// EvaluateShortDeck ranks a 6+ Hold'em hand: a flush beats a full house and
// A-6-7-8-9 is the lowest straight.
func EvaluateShortDeck(cards []*deck.Card) (*HandRank, error) {
	return evaluate(cards, ShortDeck)
}

func evaluate(cards []*deck.Card, variant Variant) (*HandRank, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidHand)
	}

	if len(cards) > 7 {
		return nil, fmt.Errorf("%w: too many cards (%d)", ErrInvalidHand, len(cards))
	}

	seen := make(map[string]bool, len(cards))
	for _, card := range cards {
		key := deck.CardToString(card)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, key)
		}
		seen[key] = true
	}

	// clone to prevent modifying original
	sortedCards := make(deck.Hand, len(cards))
	copy(sortedCards, cards)
	sort.Sort(sort.Reverse(sortByRank(sortedCards)))

	h := &HandAnalyzer{cards: sortedCards}
	if len(sortedCards) >= handSize {
		h.analyzeHand(variant)
	}

	category := h.calculateCategory(variant)
	tiebreaks := h.tiebreaks(category)

	return &HandRank{
		Category:  category,
		Tiebreaks: tiebreaks,
		Score:     calculateScore(category.order(variant), tiebreaks),
	}, nil
}

// Compare returns -1 if a is weaker than b, 1 if stronger, and 0 on a tie
func Compare(a, b *HandRank) int {
	switch {
	case a.Score < b.Score:
		return -1
	case a.Score > b.Score:
		return 1
	}

	return 0
}

// Winners returns the player IDs whose hands tie for the maximum score.
// The returned slice is sorted ascending for determinism.
func Winners(hands map[int64]*HandRank) []int64 {
	best := -1
	winners := make([]int64, 0, 1)
	for id, hand := range hands {
		if hand.Score > best {
			best = hand.Score
			winners = winners[:0]
			winners = append(winners, id)
		} else if hand.Score == best {
			winners = append(winners, id)
		}
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })
	return winners
}

// analyzeHand will loop through the cards and calculate the various combinations.
// The cards must already be sorted by rank, descending.
func (h *HandAnalyzer) analyzeHand(variant Variant) {
	lowRank := 2
	if variant == ShortDeck {
		lowRank = 6
	}

	suitRanks := make(map[deck.Suit][]int)
	rankCount := make(map[int]int)
	for _, card := range h.cards {
		suitRanks[card.Suit] = append(suitRanks[card.Suit], card.Rank)
		rankCount[card.Rank]++
	}

	h.groupPairs(rankCount)

	for _, ranks := range suitRanks {
		if len(ranks) >= handSize {
			h.flush = ranks[0:handSize]
		}
	}

	filled := make(map[int]bool, len(rankCount))
	for rank := range rankCount {
		filled[rank] = true
	}
	h.straight = bestStraight(filled, lowRank)

	for _, ranks := range suitRanks {
		if len(ranks) < handSize {
			continue
		}

		suitFilled := make(map[int]bool, len(ranks))
		for _, rank := range ranks {
			suitFilled[rank] = true
		}

		if sf := bestStraight(suitFilled, lowRank); sf > h.straightFlush {
			h.straightFlush = sf
		}
	}
}

// groupPairs buckets ranks into quads, trips, and pairs, best rank first
func (h *HandAnalyzer) groupPairs(rankCount map[int]int) {
	for _, card := range h.cards {
		switch rankCount[card.Rank] {
		case 4:
			h.quads = appendRank(h.quads, card.Rank)
		case 3:
			h.trips = appendRank(h.trips, card.Rank)
		case 2:
			h.pairs = appendRank(h.pairs, card.Rank)
		}
	}
}

func appendRank(ranks []int, rank int) []int {
	if len(ranks) > 0 && ranks[len(ranks)-1] == rank {
		return ranks
	}

	return append(ranks, rank)
}

func (h *HandAnalyzer) calculateCategory(variant Variant) Category {
	categories := make([]Category, 0, 4)

	if h.straightFlush == deck.Ace {
		return RoyalFlush
	} else if h.straightFlush > 0 {
		return StraightFlush
	}

	if len(h.quads) > 0 {
		return FourOfAKind
	}

	if h.hasFullHouse() {
		categories = append(categories, FullHouse)
	}
	if h.flush != nil {
		categories = append(categories, Flush)
	}

	// short deck reorders flush vs full house, so pick by variant order
	if len(categories) > 0 {
		best := categories[0]
		for _, c := range categories[1:] {
			if c.order(variant) > best.order(variant) {
				best = c
			}
		}

		return best
	}

	if h.straight > 0 {
		return Straight
	}

	if len(h.trips) > 0 {
		return ThreeOfAKind
	}

	if len(h.pairs) >= 2 {
		return TwoPair
	}

	if len(h.pairs) == 1 {
		return OnePair
	}

	return HighCard
}

func (h *HandAnalyzer) hasFullHouse() bool {
	if len(h.trips) == 0 {
		return false
	}

	return len(h.trips) >= 2 || len(h.pairs) > 0
}

// tiebreaks returns the ordered tiebreak cards for the category.
// The order is by significance, not raw card order: a full house compares
// the three-of-a-kind rank before the pair rank.
func (h *HandAnalyzer) tiebreaks(category Category) []int {
	switch category {
	case RoyalFlush:
		return []int{}
	case StraightFlush:
		return []int{h.straightFlush}
	case FourOfAKind:
		return append([]int{h.quads[0]}, h.kickers(1, h.quads[0])...)
	case FullHouse:
		pair := 0
		if len(h.trips) >= 2 {
			pair = h.trips[1]
		}
		if len(h.pairs) > 0 && h.pairs[0] > pair {
			pair = h.pairs[0]
		}
		return []int{h.trips[0], pair}
	case Flush:
		return h.flush
	case Straight:
		return []int{h.straight}
	case ThreeOfAKind:
		return append([]int{h.trips[0]}, h.kickers(2, h.trips[0])...)
	case TwoPair:
		return append([]int{h.pairs[0], h.pairs[1]}, h.kickers(1, h.pairs[0], h.pairs[1])...)
	case OnePair:
		return append([]int{h.pairs[0]}, h.kickers(3, h.pairs[0])...)
	case HighCard:
		n := handSize
		if len(h.cards) < n {
			n = len(h.cards)
		}

		ranks := make([]int, n)
		for i := 0; i < n; i++ {
			ranks[i] = h.cards[i].Rank
		}
		return ranks
	}

	panic("unknown category")
}

// kickers returns up to n ranks not used by the made hand
func (h *HandAnalyzer) kickers(n int, usedRanks ...int) []int {
	used := make(map[int]bool, len(usedRanks))
	for _, rank := range usedRanks {
		used[rank] = true
	}

	kickers := make([]int, 0, n)
	for _, card := range h.cards {
		if used[card.Rank] {
			continue
		}

		kickers = append(kickers, card.Rank)
		if len(kickers) == n {
			break
		}
	}

	return kickers
}

// calculateScore packs the category and tiebreaks into a single comparable
// integer using base-15 positional encoding
func calculateScore(categoryOrder int, tiebreaks []int) int {
	fiveCards := make([]int, handSize)
	copy(fiveCards, tiebreaks)

	score := categoryOrder
	for _, val := range fiveCards {
		score = score*15 + val
	}

	return score
}

type sortByRank deck.Hand

func (s sortByRank) Len() int           { return len(s) }
func (s sortByRank) Less(i, j int) bool { return s[i].Rank < s[j].Rank }
func (s sortByRank) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
