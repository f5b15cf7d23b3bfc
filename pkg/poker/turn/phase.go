package turn

import "encoding/json"

// Phase represents where a hand is in its lifecycle
type Phase int

// constants for Phase
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseEnded
)

// Next returns the following phase. Transitions are strictly forward except
// ended wraps back to waiting at new-hand start.
func (p Phase) Next() Phase {
	if p == PhaseEnded {
		return PhaseWaiting
	}

	return p + 1
}

// IsBettingPhase returns true if players act during the phase
func (p Phase) IsBettingPhase() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}

	return false
}

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseEnded:
		return "ended"
	}

	return ""
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// UnmarshalJSON decodes JSON
func (p *Phase) UnmarshalJSON(b []byte) error {
	var v struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*p = Phase(v.ID)
	return nil
}
