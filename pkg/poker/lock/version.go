package lock

import "errors"

// ErrStaleVersion is an error when the game state changed between an
// action's read and its write. No state was mutated; the caller may safely
// retry the action once.
var ErrStaleVersion = errors.New("game state changed since it was read")

// Version is an optimistic snapshot of the game-state fields an action
// computation depends on. Take one before computing an action, and call
// Check against a fresh snapshot before committing the result.
type Version struct {
	Phase        int `json:"phase"`
	CurrentActor int `json:"currentActor"`
	CurrentBet   int `json:"currentBet"`
}

// Check returns ErrStaleVersion if the current snapshot differs from the
// one the computation was based on
func (v Version) Check(current Version) error {
	if v != current {
		return ErrStaleVersion
	}

	return nil
}
