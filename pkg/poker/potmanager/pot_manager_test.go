package potmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSidePots_threeWayAllIn(t *testing.T) {
	a := assert.New(t)

	pots := ComputeSidePots([]Contributor{
		{ID: 1, Bet: 100, AllIn: true},
		{ID: 2, Bet: 200, AllIn: true},
		{ID: 3, Bet: 300, AllIn: true},
	})

	a.Equal(3, len(pots))

	a.Equal(300, pots[0].Amount)
	a.Equal([]int64{1, 2, 3}, pots[0].Eligible)

	a.Equal(200, pots[1].Amount)
	a.Equal([]int64{2, 3}, pots[1].Eligible)

	a.Equal(100, pots[2].Amount)
	a.Equal([]int64{3}, pots[2].Eligible)

	a.Equal(600, pots.Total())
}

func TestComputeSidePots_noAllIn(t *testing.T) {
	a := assert.New(t)

	pots := ComputeSidePots([]Contributor{
		{ID: 1, Bet: 50},
		{ID: 2, Bet: 50},
		{ID: 3, Bet: 50},
	})

	a.Equal(1, len(pots))
	a.Equal(150, pots[0].Amount)
	a.Equal([]int64{1, 2, 3}, pots[0].Eligible)
}

func TestComputeSidePots_foldedChipsStayCommitted(t *testing.T) {
	a := assert.New(t)

	// player 2 folded after committing 75: their chips fund the layers they
	// reached, but they are not eligible for any
	pots := ComputeSidePots([]Contributor{
		{ID: 1, Bet: 50, AllIn: true},
		{ID: 2, Bet: 75, Folded: true},
		{ID: 3, Bet: 100},
	})

	a.Equal(2, len(pots))

	a.Equal(150, pots[0].Amount) // 50 x 3
	a.Equal([]int64{1, 3}, pots[0].Eligible)

	a.Equal(75, pots[1].Amount) // 25 from the folder, 50 from player 3
	a.Equal([]int64{3}, pots[1].Eligible)

	a.Equal(225, pots.Total())
}

func TestComputeSidePots_equalAllIns(t *testing.T) {
	a := assert.New(t)

	pots := ComputeSidePots([]Contributor{
		{ID: 1, Bet: 100, AllIn: true},
		{ID: 2, Bet: 100, AllIn: true},
		{ID: 3, Bet: 100},
	})

	a.Equal(1, len(pots))
	a.Equal(300, pots[0].Amount)
	a.Equal([]int64{1, 2, 3}, pots[0].Eligible)
}

func TestValidate(t *testing.T) {
	a := assert.New(t)

	contributors := []Contributor{
		{ID: 1, Bet: 100, AllIn: true},
		{ID: 2, Bet: 200, AllIn: true},
		{ID: 3, Bet: 300, AllIn: true},
	}

	pots := ComputeSidePots(contributors)
	a.NoError(Validate(pots, contributors))

	// chip mismatch must be loud
	short := ComputeSidePots(contributors)
	short[0].Amount -= 10
	a.ErrorIs(Validate(short, contributors), ErrPotMismatch)

	// unknown player
	bad := ComputeSidePots(contributors)
	bad[0].Eligible = append(bad[0].Eligible, 99)
	a.ErrorIs(Validate(bad, contributors), ErrUnknownPlayer)

	// empty eligible set
	empty := ComputeSidePots(contributors)
	empty[1].Eligible = nil
	a.ErrorIs(Validate(empty, contributors), ErrEmptyPot)

	// eligible player below the tier
	tier := ComputeSidePots(contributors)
	tier[2].Eligible = []int64{1}
	a.ErrorIs(Validate(tier, contributors), ErrPotMismatch)
}

func TestDistribute(t *testing.T) {
	a := assert.New(t)

	pots := SidePots{
		{ID: "main", Amount: 300},
		{ID: "side", Amount: 100},
	}

	payouts := Distribute(pots, map[string][]int64{
		"main": {1, 2},
		"side": {3},
	})

	a.Equal(map[int64]int{1: 150, 2: 150, 3: 100}, payouts)
}

func TestDistribute_remainder(t *testing.T) {
	a := assert.New(t)

	// 100 chips among 3 winners: the first winner in seat order gets the
	// extra unit, and the distributed total matches the pot exactly
	pots := SidePots{{ID: "main", Amount: 100}}
	payouts := Distribute(pots, map[string][]int64{"main": {7, 8, 9}})

	a.Equal(34, payouts[7])
	a.Equal(33, payouts[8])
	a.Equal(33, payouts[9])

	total := 0
	for _, amount := range payouts {
		total += amount
	}
	a.Equal(pots.Total(), total)
}

func TestDistribute_exactness(t *testing.T) {
	a := assert.New(t)

	for amount := 1; amount <= 100; amount++ {
		for winners := 1; winners <= 5; winners++ {
			ids := make([]int64, winners)
			for i := range ids {
				ids[i] = int64(i + 1)
			}

			pots := SidePots{{ID: "p", Amount: amount}}
			payouts := Distribute(pots, map[string][]int64{"p": ids})

			total := 0
			for _, won := range payouts {
				total += won
			}
			a.Equal(amount, total, "amount=%d winners=%d", amount, winners)
		}
	}
}
