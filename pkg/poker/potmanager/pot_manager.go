// Package potmanager partitions contested chips into eligibility tiers when
// players are all-in for different amounts, validates pot conservation, and
// distributes winnings with exact remainder handling.
package potmanager

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ErrPotMismatch is an integrity violation: the side pots do not account for
// every chip the players committed. This must never be swallowed.
var ErrPotMismatch = errors.New("side pots do not match player contributions")

// ErrUnknownPlayer is an error when a pot references a player that does not exist
var ErrUnknownPlayer = errors.New("side pot references unknown player")

// ErrEmptyPot is an error when a pot has no eligible players
var ErrEmptyPot = errors.New("side pot has no eligible players")

// Contributor is a view of a player's committed chips for pot accounting
type Contributor struct {
	ID     int64
	Bet    int
	Folded bool
	AllIn  bool
}

// ComputeSidePots partitions the players' committed chips into pot layers,
// lowest bet tier first. Each layer's amount includes chips from folded
// players who contributed at least that tier, since folded chips stay in the
// pot they funded, but folded players are never eligible to win a layer.
func ComputeSidePots(contributors []Contributor) SidePots {
	tiers := make([]int, 0, len(contributors))
	seen := make(map[int]bool)
	for _, c := range contributors {
		if c.Folded || c.Bet == 0 || seen[c.Bet] {
			continue
		}

		seen[c.Bet] = true
		tiers = append(tiers, c.Bet)
	}
	sort.Ints(tiers)

	pots := make(SidePots, 0, len(tiers))
	prevTier := 0
	for _, tier := range tiers {
		amount := 0
		eligible := make([]int64, 0, len(contributors))
		for _, c := range contributors {
			contribution := c.Bet
			if contribution > tier {
				contribution = tier
			}

			if contribution > prevTier {
				amount += contribution - prevTier
			}

			if !c.Folded && c.Bet >= tier {
				eligible = append(eligible, c.ID)
			}
		}

		pots = append(pots, SidePot{
			ID:       uuid.New().String(),
			Amount:   amount,
			Tier:     tier,
			Eligible: eligible,
		})

		prevTier = tier
	}

	return pots
}

// Validate checks pot conservation: the side pots must account for every
// committed chip (tolerance of one unit for integer rounding), and every pot
// must have a non-empty eligible set referencing only known players who
// contributed at least that pot's tier.
func Validate(pots SidePots, contributors []Contributor) error {
	byID := make(map[int64]Contributor, len(contributors))
	committed := 0
	for _, c := range contributors {
		byID[c.ID] = c
		committed += c.Bet
	}

	if diff := pots.Total() - committed; diff > 1 || diff < -1 {
		return fmt.Errorf("%w: pots total %d, committed %d", ErrPotMismatch, pots.Total(), committed)
	}

	for _, pot := range pots {
		if len(pot.Eligible) == 0 {
			return fmt.Errorf("%w: pot %s", ErrEmptyPot, pot.ID)
		}

		for _, id := range pot.Eligible {
			c, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: pot %s references player %d", ErrUnknownPlayer, pot.ID, id)
			}

			if c.Bet < pot.Tier {
				return fmt.Errorf("%w: player %d did not reach tier %d", ErrPotMismatch, id, pot.Tier)
			}
		}
	}

	return nil
}

// Distribute splits each pot evenly among its winners. The integer remainder
// is handed out one unit at a time to the first winners in the order given,
// so callers must pass winners in a fixed, deterministic order (seat order).
// The distributed total always equals the pot total exactly.
func Distribute(pots SidePots, winnersPerPot map[string][]int64) map[int64]int {
	payouts := make(map[int64]int)
	for _, pot := range pots {
		winners := winnersPerPot[pot.ID]
		if len(winners) == 0 || pot.Amount == 0 {
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		for i, id := range winners {
			amount := share
			if i < remainder {
				amount++
			}

			payouts[id] += amount
		}
	}

	return payouts
}
