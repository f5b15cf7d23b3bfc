package action

import (
	"encoding/json"
	"fmt"
	"math"
)

// Type represents an action a player can take
type Type string

// action constants
const (
	Fold  Type = "fold"
	Check Type = "check"
	Call  Type = "call"
	Raise Type = "raise"
	AllIn Type = "all-in"
)

var allowedActions = map[Type]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Raise: true,
	AllIn: true,
}

// Request is an incoming action submission: the action plus an optional
// amount. Only raises carry a meaningful amount.
type Request struct {
	Type   Type `json:"action"`
	Amount int  `json:"amount,omitempty"`
}

// FromString returns an action type for the given string
func FromString(s string) (Type, error) {
	if _, ok := allowedActions[Type(s)]; ok {
		return Type(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (t Type) String() string {
	switch t {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case AllIn:
		return "All-in"
	}

	panic("unknown action")
}

// IsValid returns true if the action is permitted
func (t Type) IsValid() bool {
	_, ok := allowedActions[t]
	return ok
}

// MarshalJSON encodes the action into JSON
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(t),
		Name: t.String(),
	})
}

// UnmarshalJSON decodes the action from JSON
func (t *Type) UnmarshalJSON(b []byte) error {
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*t = Type(v.ID)
	return nil
}

// LogMessage returns a message formatted for the event feed
func (t Type) LogMessage(amount int) string {
	switch t {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case AllIn:
		return fmt.Sprintf("went all-in for ${%d}", amount)
	}

	return ""
}

// SanitizeAmount converts an untrusted wire value into a safe bet amount:
// floored to an integer, clamped to [0, maxBet], with nil and unrecognized
// types treated as zero. This closes off float and overflow exploitation of
// bet amounts.
func SanitizeAmount(value interface{}, maxBet int) int {
	var amount int
	switch val := value.(type) {
	case int:
		amount = val
	case int64:
		amount = int(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}

		amount = int(math.Floor(val))
	default:
		return 0
	}

	if amount < 0 {
		return 0
	}

	if amount > maxBet {
		return maxBet
	}

	return amount
}
