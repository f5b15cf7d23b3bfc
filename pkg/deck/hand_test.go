package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand(t *testing.T) {
	a := assert.New(t)

	var hand Hand
	a.Nil(hand.FirstCard())
	a.Nil(hand.LastCard())

	hand.AddCard(MustCard("Ah"))
	hand.AddCard(MustCard("10s"))

	a.Equal("Ah", hand.FirstCard().String())
	a.Equal("10s", hand.LastCard().String())
	a.Equal("Ah,10s", hand.String())

	a.True(hand.HasCard(MustCard("Ah")))
	a.False(hand.HasCard(MustCard("As")))

	clone := hand.Clone()
	clone.AddCard(MustCard("2d"))
	a.Len(hand, 2)
	a.Len(clone, 3)
}
