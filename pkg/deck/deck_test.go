package deck

import (
	"testing"

	"cardroom-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.Equal(52, d.CardsLeft())
	assertUniqueCards(t, d)
}

func TestNewShortDeck(t *testing.T) {
	a := assert.New(t)

	d := NewShortDeck()
	a.Equal(36, d.CardsLeft())
	assertUniqueCards(t, d)

	for _, card := range d.Cards {
		a.GreaterOrEqual(card.Rank, 6)
	}
}

func TestDeck_Shuffle_isPermutation(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.SetRandomGenerator(rng.NewSeeded(1))
	d.Shuffle()

	a.Equal(52, d.CardsLeft())
	assertUniqueCards(t, d)

	// same seed reproduces the same order
	d2 := New()
	d2.SetRandomGenerator(rng.NewSeeded(1))
	d2.Shuffle()
	a.Equal(CardsToString(d.Cards), CardsToString(d2.Cards))

	d3 := New()
	d3.SetRandomGenerator(rng.NewSeeded(2))
	d3.Shuffle()
	a.NotEqual(CardsToString(d.Cards), CardsToString(d3.Cards))
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)

	d := New()
	first := d.Cards[0]
	card, err := d.Draw()
	a.NoError(err)
	a.True(first.Equal(card))
	a.Equal(51, d.CardsLeft())

	for d.CardsLeft() > 0 {
		_, err := d.Draw()
		a.NoError(err)
	}

	card, err = d.Draw()
	a.ErrorIs(err, ErrInsufficientCards)
	a.Nil(card)
}

func TestDeck_Deal(t *testing.T) {
	a := assert.New(t)

	d := New()
	cards, err := d.Deal(5)
	a.NoError(err)
	a.Equal(5, len(cards))
	a.Equal(47, d.CardsLeft())

	a.True(d.CanDraw(47))
	a.False(d.CanDraw(48))

	cards, err = d.Deal(48)
	a.ErrorIs(err, ErrInsufficientCards)
	a.Nil(cards)
	a.Equal(47, d.CardsLeft())
}

func assertUniqueCards(t *testing.T, d *Deck) {
	t.Helper()

	seen := make(map[string]bool)
	for _, card := range d.Cards {
		key := CardToString(card)
		assert.False(t, seen[key], "duplicate card %s", key)
		seen[key] = true
	}
}
