package holdem

import (
	"time"

	"github.com/google/uuid"

	"cardroom-server/pkg/poker/turn"
)

// event identifiers that do not correspond to a player action
const (
	eventHandStart  = "hand-start"
	eventSmallBlind = "small-blind"
	eventBigBlind   = "big-blind"
	eventWin        = "win"
)

// Event is an append-only audit log entry, one per processed action plus the
// hand lifecycle markers. Events are never mutated or removed once recorded.
type Event struct {
	ID       string     `json:"id"`
	PlayerID int64      `json:"playerId,omitempty"`
	Action   string     `json:"action"`
	Amount   int        `json:"amount,omitempty"`
	Phase    turn.Phase `json:"phase"`
	Time     time.Time  `json:"timestamp"`
}

func (g *Game) recordEvent(playerID int64, act string, amount int) {
	g.events = append(g.events, &Event{
		ID:       uuid.New().String(),
		PlayerID: playerID,
		Action:   act,
		Amount:   amount,
		Phase:    g.phase,
		Time:     g.now(),
	})
}

// Events returns the audit log for the table. The returned slice must not be
// modified.
func (g *Game) Events() []*Event {
	return g.events
}
