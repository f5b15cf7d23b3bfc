package handanalyzer

import "fmt"

// Category is a poker hand category, i.e., royal flush
type Category int

// Constants for category, weakest first
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Variant selects the hand-category ordering
type Variant int

// variant constants
const (
	// Standard is regular 52-card Hold'em ordering
	Standard Variant = iota
	// ShortDeck is 6+ Hold'em, where a flush beats a full house
	ShortDeck
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}

// order returns the category's rank within the variant's ordering.
// Short deck swaps flush above full house.
func (c Category) order(v Variant) int {
	if v == ShortDeck {
		switch c {
		case Flush:
			return int(FullHouse)
		case FullHouse:
			return int(Flush)
		}
	}

	return int(c)
}
