package potmanager

import "encoding/json"

// SidePot is one contested layer of the pot. Eligible lists the players who
// can win the layer, in the order their seats contributed.
type SidePot struct {
	ID       string
	Amount   int
	Tier     int
	Eligible []int64
}

type sidePotJSON struct {
	ID       string  `json:"id"`
	Amount   int     `json:"amount"`
	Tier     int     `json:"tier"`
	Eligible []int64 `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (s SidePot) MarshalJSON() ([]byte, error) {
	return json.Marshal(sidePotJSON{
		ID:       s.ID,
		Amount:   s.Amount,
		Tier:     s.Tier,
		Eligible: s.Eligible,
	})
}

// SidePots is an ordered list of pot layers, lowest bet tier first
type SidePots []SidePot

// Total returns the combined total of all pot layers
func (s SidePots) Total() int {
	total := 0
	for _, pot := range s {
		total += pot.Amount
	}

	return total
}
