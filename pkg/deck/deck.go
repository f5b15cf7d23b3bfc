package deck

import (
	"errors"

	"cardroom-server/internal/rng"
)

// ErrInsufficientCards is an error when more cards are requested than remain in the deck
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck is an ordered sequence of unique cards, consumed front-to-back
type Deck struct {
	Cards []*Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new 52-card deck.
// Important! the deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	return &Deck{
		Cards: buildCards(2),
		rng:   rng.Crypto{},
	}
}

// NewShortDeck returns a new 36-card short deck (6+ Hold'em, ranks 6 through Ace)
func NewShortDeck() *Deck {
	return &Deck{
		Cards: buildCards(6),
		rng:   rng.Crypto{},
	}
}

func buildCards(lowRank int) []*Card {
	cards := make([]*Card, 0, (Ace-lowRank+1)*len(Suits))
	for _, suit := range Suits {
		for rank := lowRank; rank <= Ace; rank++ {
			cards = append(cards, &Card{Rank: rank, Suit: suit})
		}
	}

	return cards
}

// SetRandomGenerator overrides the random source used by Shuffle.
// Tests use this with a seeded generator for deterministic hands.
func (d *Deck) SetRandomGenerator(generator rng.Generator) {
	d.rng = generator
}

// Shuffle performs a Fisher-Yates shuffle over the remaining cards
func (d *Deck) Shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw will draw the next card
// If there are no more cards, an ErrInsufficientCards is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrInsufficientCards
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// Deal removes the first n cards from the deck
func (d *Deck) Deal(n int) ([]*Card, error) {
	if n > len(d.Cards) {
		return nil, ErrInsufficientCards
	}

	cards := d.Cards[0:n]
	d.Cards = d.Cards[n:]

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
