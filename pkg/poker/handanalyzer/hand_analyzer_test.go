package handanalyzer

import (
	"testing"

	"cardroom-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func assertCategory(t *testing.T, cards string, expected Category) *HandRank {
	t.Helper()

	hr, err := Evaluate(deck.MustCards(cards))
	assert.NoError(t, err)
	assert.Equal(t, expected, hr.Category, "cards: %s", cards)
	return hr
}

func TestEvaluate_categories(t *testing.T) {
	assertCategory(t, "Ah,Kh,Qh,Jh,10h", RoyalFlush)
	assertCategory(t, "9s,8s,7s,6s,5s", StraightFlush)
	assertCategory(t, "Ah,As,Ad,Ac,2h", FourOfAKind)
	assertCategory(t, "Kh,Ks,Kd,2c,2h", FullHouse)
	assertCategory(t, "Ah,Jh,9h,7h,2h", Flush)
	assertCategory(t, "9s,8d,7c,6h,5s", Straight)
	assertCategory(t, "Qh,Qs,Qd,8c,2h", ThreeOfAKind)
	assertCategory(t, "Jh,Js,4d,4c,Ah", TwoPair)
	assertCategory(t, "10h,10s,Ad,7c,2h", OnePair)
	assertCategory(t, "Ah,Js,9d,6c,3h", HighCard)
}

func TestEvaluate_wheel(t *testing.T) {
	a := assert.New(t)

	hr := assertCategory(t, "Ah,2s,3d,4c,5h", Straight)
	a.Equal([]int{5}, hr.Tiebreaks)

	// the wheel is the lowest straight
	sixHigh := assertCategory(t, "2h,3s,4d,5c,6h", Straight)
	a.Equal(1, Compare(sixHigh, hr))

	// steel wheel
	hr = assertCategory(t, "Ah,2h,3h,4h,5h", StraightFlush)
	a.Equal([]int{5}, hr.Tiebreaks)
}

func TestEvaluate_sevenCards(t *testing.T) {
	a := assert.New(t)

	// best five of seven: flush over the straight
	hr, err := Evaluate(deck.MustCards("Ah,Kh,9h,6h,2h,Qs,Jd"))
	a.NoError(err)
	a.Equal(Flush, hr.Category)
	a.Equal([]int{deck.Ace, deck.King, 9, 6, 2}, hr.Tiebreaks)

	// two trips make a full house
	hr, err = Evaluate(deck.MustCards("Kh,Ks,Kd,2c,2h,2s,7d"))
	a.NoError(err)
	a.Equal(FullHouse, hr.Category)
	a.Equal([]int{deck.King, 2}, hr.Tiebreaks)

	// three pair: best two plus the third pair rank as kicker
	hr, err = Evaluate(deck.MustCards("Jh,Js,4d,4c,9h,9s,2d"))
	a.NoError(err)
	a.Equal(TwoPair, hr.Category)
	a.Equal([]int{deck.Jack, 9, 4}, hr.Tiebreaks)
}

func TestEvaluate_invalidHands(t *testing.T) {
	a := assert.New(t)

	hr, err := Evaluate(nil)
	a.ErrorIs(err, ErrInvalidHand)
	a.Nil(hr)

	hr, err = Evaluate(deck.MustCards("Ah,Ah,2s,3d,4c,5h"))
	a.ErrorIs(err, ErrInvalidHand)
	a.Nil(hr)

	hr, err = Evaluate(deck.MustCards("Ah,2s,3d,4c,5h,6s,7d,8c"))
	a.ErrorIs(err, ErrInvalidHand)
	a.Nil(hr)
}

func TestEvaluate_partialHand(t *testing.T) {
	a := assert.New(t)

	// fewer than five cards degrade to a high-card ranking
	hr, err := Evaluate(deck.MustCards("Ah,As"))
	a.NoError(err)
	a.Equal(HighCard, hr.Category)
	a.Equal([]int{deck.Ace, deck.Ace}, hr.Tiebreaks)

	weaker, err := Evaluate(deck.MustCards("Kh,Qs"))
	a.NoError(err)
	a.Equal(-1, Compare(weaker, hr))
}

func TestCompare(t *testing.T) {
	a := assert.New(t)

	flush, _ := Evaluate(deck.MustCards("7h,6h,4h,3h,2h"))
	straight, _ := Evaluate(deck.MustCards("Ah,Ks,Qd,Jc,10h"))

	// category dominates tiebreaks: any flush beats any straight
	a.Equal(1, Compare(flush, straight))
	a.Equal(-1, Compare(straight, flush))

	// reordering constituent cards must not change the outcome
	fullHouseA, _ := Evaluate(deck.MustCards("2c,2h,Kh,Ks,Kd"))
	fullHouseB, _ := Evaluate(deck.MustCards("Kd,2h,Ks,Kh,2c"))
	a.Equal(0, Compare(fullHouseA, fullHouseB))

	// full house compares trips rank before pair rank
	queensOverAces, _ := Evaluate(deck.MustCards("Qc,Qh,Qs,As,Ad"))
	kingsOverTwos, _ := Evaluate(deck.MustCards("Kh,Ks,Kd,2c,2h"))
	a.Equal(1, Compare(kingsOverTwos, queensOverAces))

	// kickers break pair ties
	pairAceKicker, _ := Evaluate(deck.MustCards("10h,10s,Ad,7c,2h"))
	pairKingKicker, _ := Evaluate(deck.MustCards("10d,10c,Kd,7s,2s"))
	a.Equal(1, Compare(pairAceKicker, pairKingKicker))

	// antisymmetry
	a.Equal(-Compare(pairKingKicker, pairAceKicker), Compare(pairAceKicker, pairKingKicker))
}

func TestWinners(t *testing.T) {
	a := assert.New(t)

	flush, _ := Evaluate(deck.MustCards("Ah,Jh,9h,7h,2h"))
	straightA, _ := Evaluate(deck.MustCards("9s,8d,7c,6h,5s"))
	straightB, _ := Evaluate(deck.MustCards("9h,8c,7d,6s,5c"))

	a.Equal([]int64{3}, Winners(map[int64]*HandRank{1: straightA, 2: straightB, 3: flush}))

	// chopped pot
	a.Equal([]int64{1, 2}, Winners(map[int64]*HandRank{1: straightA, 2: straightB}))
}

func TestEvaluateShortDeck(t *testing.T) {
	a := assert.New(t)

	// short-deck wheel: A-6-7-8-9
	hr, err := EvaluateShortDeck(deck.MustCards("Ah,6s,7d,8c,9h"))
	a.NoError(err)
	a.Equal(Straight, hr.Category)
	a.Equal([]int{9}, hr.Tiebreaks)

	// in 6+ hold'em, a flush beats a full house
	flush, _ := EvaluateShortDeck(deck.MustCards("Ah,Jh,9h,7h,6h"))
	fullHouse, _ := EvaluateShortDeck(deck.MustCards("Kh,Ks,Kd,7c,7h"))
	a.Equal(1, Compare(flush, fullHouse))

	// the standard wheel is not a straight with a short deck
	hr, err = EvaluateShortDeck(deck.MustCards("Ah,10s,7d,8c,9h"))
	a.NoError(err)
	a.Equal(HighCard, hr.Category)
}

func TestEvaluate_scoreMonotonicity(t *testing.T) {
	a := assert.New(t)

	ladder := []string{
		"Ah,Js,9d,6c,3h",    // high card
		"10h,10s,Ad,7c,2h",  // pair
		"Jh,Js,4d,4c,Ah",    // two pair
		"Qh,Qs,Qd,8c,2h",    // trips
		"9s,8d,7c,6h,5s",    // straight
		"7h,6h,4h,3h,2h",    // flush
		"2c,2h,2s,3d,3c",    // full house
		"2c,2h,2s,2d,3c",    // quads
		"6s,5s,4s,3s,2s",    // straight flush
		"Ah,Kh,Qh,Jh,10h",   // royal flush
	}

	prev := -1
	for _, cards := range ladder {
		hr, err := Evaluate(deck.MustCards(cards))
		a.NoError(err)
		a.Greater(hr.Score, prev, "cards: %s", cards)
		prev = hr.Score
	}
}
