package turn

// BetState is a view of a player's betting-round state
type BetState struct {
	Folded   bool
	AllIn    bool
	HasActed bool
	Bet      int
}

func (b BetState) canAct() bool {
	return !b.Folded && !b.AllIn
}

// BettingRoundComplete reports whether no further action is possible this
// round. The round is complete when one or fewer non-folded players remain,
// when at most one player can still act and that player has matched the bet,
// or when every player who can act has acted and matched the table bet.
//
// lastRaiser is the index of the player who made the most recent raise, or
// NoSeat if there was none. Raising must clear HasActed on every other player
// who can act, so a completed round implies action returned to the raiser.
func BettingRoundComplete(states []BetState, currentBet int, lastRaiser int) bool {
	nonFolded := 0
	canAct := 0
	for _, s := range states {
		if s.Folded {
			continue
		}

		nonFolded++
		if !s.AllIn {
			canAct++
		}
	}

	if nonFolded <= 1 {
		return true
	}

	if canAct == 0 {
		return true
	}

	// a raise reopens the action, so the raiser must be the high bet
	if lastRaiser != NoSeat && lastRaiser < len(states) && states[lastRaiser].Bet < currentBet {
		return false
	}

	// a lone remaining actor can owe a call against an all-in, but once
	// matched there is nobody left to respond to a bet
	if canAct == 1 {
		for _, s := range states {
			if s.canAct() && s.Bet != currentBet {
				return false
			}
		}

		return true
	}

	for _, s := range states {
		if !s.canAct() {
			continue
		}

		// the lone remaining actor may still owe a call against an all-in
		if !s.HasActed || s.Bet != currentBet {
			return false
		}
	}

	return true
}
