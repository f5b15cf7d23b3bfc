package holdem

import "errors"

// player-facing action rejections. These are terminal for the submitted
// action and safe to surface verbatim; the caller re-prompts the player.
var (
	ErrNotYourTurn           = errors.New("it is not your turn")
	ErrInvalidPhaseForAction = errors.New("you cannot act in this phase")
	ErrBelowMinimumRaise     = errors.New("raise is below the minimum raise")
	ErrInsufficientChips     = errors.New("you do not have enough chips")
	ErrNothingToCall         = errors.New("there is no bet to call")
	ErrBetOwed               = errors.New("you cannot check when a bet is outstanding")
	ErrActionTooFast         = errors.New("you are acting too quickly")
)

// lifecycle errors
var (
	ErrPlayerNotFound   = errors.New("player is not at the table")
	ErrHandInProgress   = errors.New("a hand is already in progress")
	ErrNotEnoughPlayers = errors.New("at least two players with chips are required")
	ErrNothingToAdvance = errors.New("the hand is not waiting to advance")
)
