package holdem

import (
	"sort"

	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/poker/handanalyzer"
	"cardroom-server/pkg/poker/potmanager"
	"cardroom-server/pkg/poker/turn"
)

// resolveShowdown evaluates every live hand, picks the winners of each pot
// layer, and pays them out. Remainder chips go to the earliest winning seats
// so the distributed total always matches the pots exactly.
func (g *Game) resolveShowdown() error {
	g.phase = turn.PhaseShowdown
	g.currentActor = turn.NoSeat
	g.pendingAdvance = false

	ranks := make(map[int64]*handanalyzer.HandRank)
	for _, p := range g.inHand {
		if p.folded {
			continue
		}

		hr := p.getHandRank(g.community, g.options.ShortDeck)
		if hr == nil {
			g.logger.WithField("player", p.ID).Error("cannot evaluate hand at showdown")
			return handanalyzer.ErrInvalidHand
		}

		ranks[p.ID] = hr
	}

	winnersPerPot := make(map[string][]int64, len(g.sidePots))
	for _, pot := range g.sidePots {
		eligible := make(map[int64]*handanalyzer.HandRank)
		for _, id := range pot.Eligible {
			if hr, ok := ranks[id]; ok {
				eligible[id] = hr
			}
		}

		if len(eligible) == 0 {
			continue
		}

		winners := handanalyzer.Winners(eligible)
		g.sortBySeat(winners)
		winnersPerPot[pot.ID] = winners
	}

	payouts := potmanager.Distribute(g.sidePots, winnersPerPot)

	for _, p := range g.inHand {
		if p.folded {
			continue
		}

		amount, won := payouts[p.ID]
		if !won {
			p.result = resultLost
			continue
		}

		p.chips += amount
		p.winnings = amount
		p.result = resultWon

		g.recordEvent(p.ID, eventWin, amount)
		g.logger.WithFields(logrus.Fields{
			"player": p.ID,
			"amount": amount,
			"hand":   ranks[p.ID].Category.String(),
		}).Info("won at showdown")
	}

	g.pot = 0
	g.committed = 0
	g.phase = turn.PhaseEnded

	return nil
}

// sortBySeat orders player IDs by their table-join position, the fixed order
// used when handing out indivisible remainder chips
func (g *Game) sortBySeat(ids []int64) {
	index := make(map[int64]int, len(g.inHand))
	for i, p := range g.inHand {
		index[p.ID] = i
	}

	sort.Slice(ids, func(i, j int) bool {
		return index[ids[i]] < index[ids[j]]
	})
}
