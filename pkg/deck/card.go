package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedCard is an error when a card string cannot be decoded
var ErrMalformedCard = errors.New("malformed card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the four suits in a fixed order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

func (c *Card) String() string {
	return CardToString(c)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// AceLowRank returns the rank where Ace is considered low instead of high
func (c *Card) AceLowRank() int {
	if c.Rank == Ace {
		return LowAce
	}

	return c.Rank
}

var cardRx = regexp.MustCompile(`^(10|[2-9JQKA])([hdcs])\z`)

// CardFromString decodes a two-token card string such as "Kh" or "10s".
// Returns ErrMalformedCard if the rank or suit token is not recognized.
func CardFromString(s string) (*Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	var rank int
	switch match[1] {
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		rank, _ = strconv.Atoi(match[1])
	}

	var suit Suit
	switch match[2] {
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	case "s":
		suit = Spades
	}

	return &Card{Rank: rank, Suit: suit}, nil
}

// CardToString encodes a card as rank token + suit letter, i.e. "Kh" or "10s"
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var rank string
	switch card.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(card.Rank)
	}

	var suit string
	switch card.Suit {
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Clubs:
		suit = "c"
	case Spades:
		suit = "s"
	}

	return rank + suit
}

// CardsFromString decodes a comma-separated list of cards
func CardsFromString(s string) ([]*Card, error) {
	if s == "" {
		return []*Card{}, nil
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, cs := range cardStrings {
		card, err := CardFromString(cs)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}

// MustCard decodes a card string and panics on failure. Test helper.
func MustCard(s string) *Card {
	card, err := CardFromString(s)
	if err != nil {
		panic(err)
	}

	return card
}

// MustCards decodes a comma-separated card list and panics on failure. Test helper.
func MustCards(s string) []*Card {
	cards, err := CardsFromString(s)
	if err != nil {
		panic(err)
	}

	return cards
}
