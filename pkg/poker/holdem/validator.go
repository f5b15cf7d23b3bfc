package holdem

import (
	"fmt"

	"cardroom-server/pkg/poker/action"
	"cardroom-server/pkg/poker/turn"
)

// pendingAction is a validated action ready to apply
type pendingAction struct {
	player *Player

	// commit is the number of chips the action moves from the stack
	commit int

	// raiseTo is the table bet after a raise or a raising all-in
	raiseTo int

	// reopens is true when the action raises the table bet and every other
	// eligible player must act again
	reopens bool
}

// Validate checks whether the player may take the requested action against
// the current state. It never mutates the game, so callers can use it as a
// cheap pre-check before acquiring locks or opening a transaction.
func (g *Game) Validate(playerID int64, req action.Request) error {
	_, err := g.validateAction(playerID, req, true)
	return err
}

func (g *Game) validateAction(playerID int64, req action.Request, enforceCooldown bool) (*pendingAction, error) {
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown action for identifier: %s", req.Type)
	}

	if !g.phase.IsBettingPhase() {
		return nil, ErrInvalidPhaseForAction
	}

	// folded and all-in players are never the current actor
	if g.currentActor == turn.NoSeat || p.Seat != g.currentActor {
		return nil, ErrNotYourTurn
	}

	if enforceCooldown && g.options.ActionCooldown > 0 && !p.lastActionAt.IsZero() {
		if g.now().Sub(p.lastActionAt) < g.options.ActionCooldown {
			return nil, ErrActionTooFast
		}
	}

	pa := &pendingAction{player: p}

	switch req.Type {
	case action.Fold:
		// always legal on your turn

	case action.Check:
		if p.bet != g.currentBet {
			return nil, fmt.Errorf("%w: %d to call", ErrBetOwed, g.currentBet-p.bet)
		}

	case action.Call:
		owed := g.currentBet - p.bet
		if owed <= 0 {
			return nil, ErrNothingToCall
		}

		// a short stack calls all-in for less
		if owed > p.chips {
			owed = p.chips
		}
		pa.commit = owed

	case action.Raise:
		amount := action.SanitizeAmount(req.Amount, g.options.MaxBet)

		minTo := g.currentBet + g.minRaise
		if amount < minTo {
			return nil, fmt.Errorf("%w: must raise to at least %d", ErrBelowMinimumRaise, minTo)
		}

		commit := amount - p.bet
		if commit > p.chips {
			return nil, fmt.Errorf("%w: raising to %d requires %d more chips", ErrInsufficientChips, amount, commit)
		}

		pa.commit = commit
		pa.raiseTo = amount
		pa.reopens = true

	case action.AllIn:
		if p.chips == 0 {
			return nil, ErrInsufficientChips
		}

		pa.commit = p.chips
		if to := p.bet + p.chips; to > g.currentBet {
			pa.raiseTo = to
			pa.reopens = true
		}
	}

	return pa, nil
}
