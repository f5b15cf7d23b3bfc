package holdem

import (
	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/poker/action"
	"cardroom-server/pkg/poker/potmanager"
	"cardroom-server/pkg/poker/turn"
)

// ApplyAction validates and applies one player action, then advances the
// turn, closes the betting round, or ends the hand as the action requires
func (g *Game) ApplyAction(playerID int64, req action.Request) error {
	return g.applyAction(playerID, req, true)
}

// ForceFold folds the current actor on behalf of an expired turn timer. It
// takes the same path as a player-submitted fold, minus the cooldown check,
// so a player who acted just before the timeout simply wins the race.
func (g *Game) ForceFold(playerID int64) error {
	return g.applyAction(playerID, action.Request{Type: action.Fold}, false)
}

func (g *Game) applyAction(playerID int64, req action.Request, enforceCooldown bool) error {
	pa, err := g.validateAction(playerID, req, enforceCooldown)
	if err != nil {
		return err
	}

	p := pa.player

	switch req.Type {
	case action.Fold:
		p.folded = true
		p.result = resultFolded

	case action.Check:
		// no chips move

	case action.Call:
		g.commitChips(p, pa.commit)

	case action.Raise, action.AllIn:
		g.commitChips(p, pa.commit)
		if pa.reopens {
			if increment := pa.raiseTo - g.currentBet; increment > g.minRaise {
				g.minRaise = increment
			}

			g.currentBet = pa.raiseTo
			g.lastRaiserSeat = p.Seat
			g.reopenAction(p)
		}
	}

	p.hasActed = true
	p.lastAction = req.Type
	p.lastActionAt = g.now()

	logAmount := pa.commit
	if req.Type == action.Raise {
		logAmount = pa.raiseTo
	}

	g.recordEvent(p.ID, string(req.Type), pa.commit)
	g.logger.WithFields(logrus.Fields{
		"player": p.ID,
		"seat":   p.Seat,
		"phase":  g.phase.String(),
	}).Info(req.Type.LogMessage(logAmount))

	if err := g.checkChipConservation(); err != nil {
		return err
	}

	return g.settle()
}

// commitChips moves chips from the player's stack into their round bet and
// keeps the hand-level conservation total current
func (g *Game) commitChips(p *Player, amount int) {
	p.commit(amount)
	g.committed += amount
}

// reopenAction clears hasActed for every other player who can still act, so
// a raise sends the action back around the table
func (g *Game) reopenAction(raiser *Player) {
	for _, p := range g.inHand {
		if p == raiser || p.folded || p.allIn {
			continue
		}

		p.hasActed = false
	}
}

// settle decides what follows the action just applied: hand over, round
// over, or pass the turn
func (g *Game) settle() error {
	if g.nonFoldedCount() <= 1 {
		return g.finishSingleWinner()
	}

	if turn.BettingRoundComplete(g.betStates(), g.currentBet, g.lastRaiserIndex()) {
		if err := g.closeRound(); err != nil {
			return err
		}

		return g.advancePhase()
	}

	next := turn.NextActiveSeat(g.currentActor, g.seats())
	if next == turn.NoSeat {
		// the lone remaining actor still owes a call against an all-in
		next = g.loneActorSeat()
	}

	g.currentActor = next
	return nil
}

// loneActorSeat returns the seat of the only player who can still act, or
// turn.NoSeat if there is none
func (g *Game) loneActorSeat() int {
	seat := turn.NoSeat
	for _, p := range g.inHand {
		if p.folded || p.allIn {
			continue
		}

		if seat != turn.NoSeat {
			return turn.NoSeat
		}

		seat = p.Seat
	}

	return seat
}

// closeRound sweeps the round bets into the pot, recomputes the side pots
// from the hand totals, and resets the per-round player state
func (g *Game) closeRound() error {
	for _, p := range g.inHand {
		g.pot += p.bet
		p.newRound()
	}

	g.currentBet = 0
	g.minRaise = g.options.BigBlind
	g.lastRaiserSeat = turn.NoSeat
	g.currentActor = turn.NoSeat

	g.sidePots = potmanager.ComputeSidePots(g.contributors())
	if err := potmanager.Validate(g.sidePots, g.contributors()); err != nil {
		g.logger.WithError(err).Error("side pot validation failed")
		return err
	}

	return g.checkChipConservation()
}

// contributors views the in-hand players by their whole-hand commitment, the
// basis for side pot tiers
func (g *Game) contributors() []potmanager.Contributor {
	contributors := make([]potmanager.Contributor, len(g.inHand))
	for i, p := range g.inHand {
		contributors[i] = potmanager.Contributor{
			ID:     p.ID,
			Bet:    p.totalBet,
			Folded: p.folded,
			AllIn:  p.allIn,
		}
	}

	return contributors
}

// advancePhase deals the next street and opens its betting round, or routes
// to showdown after the river
func (g *Game) advancePhase() error {
	g.phase = g.phase.Next()

	var deal int
	switch g.phase {
	case turn.PhaseFlop:
		deal = 3
	case turn.PhaseTurn, turn.PhaseRiver:
		deal = 1
	case turn.PhaseShowdown:
		return g.resolveShowdown()
	}

	cards, err := g.deck.Deal(deal)
	if err != nil {
		g.logger.WithError(err).Error("cannot deal community cards")
		return err
	}
	g.community = append(g.community, cards...)

	g.logger.WithFields(logrus.Fields{
		"phase":     g.phase.String(),
		"community": g.community.String(),
	}).Info("dealt community cards")

	g.currentActor = turn.FirstToAct(g.dealerIndex(), g.phase, g.seats())
	if g.currentActor == turn.NoSeat || turn.BettingRoundComplete(g.betStates(), g.currentBet, turn.NoSeat) {
		// every contesting player is all-in; the caller schedules the runout
		g.currentActor = turn.NoSeat
		g.pendingAdvance = true
	}

	return nil
}

// Advance runs the next street of an all-in runout. The engine never sleeps
// or schedules; the caller invokes Advance after whatever display delay it
// wants, repeating until the hand ends.
func (g *Game) Advance() error {
	if !g.pendingAdvance {
		return ErrNothingToAdvance
	}

	g.pendingAdvance = false
	if err := g.closeRound(); err != nil {
		return err
	}

	return g.advancePhase()
}

// finishSingleWinner ends the hand immediately when everyone else folded.
// The last player standing takes the entire pot without showing a hand.
func (g *Game) finishSingleWinner() error {
	for _, p := range g.inHand {
		g.pot += p.bet
		p.bet = 0
	}

	g.currentBet = 0
	g.currentActor = turn.NoSeat
	g.pendingAdvance = false

	var winner *Player
	for _, p := range g.inHand {
		if !p.folded {
			winner = p
			break
		}
	}

	if winner == nil {
		return ErrPlayerNotFound
	}

	winner.chips += g.pot
	winner.winnings = g.pot
	winner.result = resultWon
	for _, p := range g.inHand {
		if p != winner && p.result == resultPending {
			p.result = resultLost
		}
	}

	g.recordEvent(winner.ID, eventWin, g.pot)
	g.logger.WithFields(logrus.Fields{
		"player": winner.ID,
		"amount": g.pot,
	}).Info("hand won uncontested")

	g.committed = 0
	g.pot = 0
	g.phase = turn.PhaseEnded

	return nil
}
