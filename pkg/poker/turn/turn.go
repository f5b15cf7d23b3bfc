// Package turn computes dealer rotation, blind seats, and first-to-act for a
// hand of Hold'em.
//
// All functions that take a []Seat expect the seats in the table's natural
// join order, never re-sorted by seat number. Sorting silently changes whose
// seat is "next" relative to the dealer when seats were joined out of numeric
// order, so the join order is canonical here.
package turn

// NoSeat indicates no eligible seat remains
const NoSeat = -1

// Seat is a view of a seated player for rotation purposes
type Seat struct {
	// Position is the player's seat number at the table
	Position int
	Folded   bool
	AllIn    bool
}

func (s Seat) canAct() bool {
	return !s.Folded && !s.AllIn
}

// NextActiveSeat returns the position of the first seat after current (in
// join order, cyclically) that can still act. Returns NoSeat if one or fewer
// eligible seats remain, in which case the betting is over.
func NextActiveSeat(current int, seats []Seat) int {
	eligible := 0
	for _, s := range seats {
		if s.canAct() {
			eligible++
		}
	}

	if eligible <= 1 {
		return NoSeat
	}

	start := indexOfPosition(current, seats)
	if start < 0 {
		return NoSeat
	}

	n := len(seats)
	for i := 1; i <= n; i++ {
		s := seats[(start+i)%n]
		if s.canAct() {
			return s.Position
		}
	}

	return NoSeat
}

// NextDealer returns the next dealer's seat number: the smallest active seat
// number greater than the current dealer's, wrapping to the smallest active
// seat if none is greater. This preserves clockwise order even when the
// current dealer has been eliminated mid-rotation.
func NextDealer(current int, activeSeats []int) int {
	if len(activeSeats) == 0 {
		return NoSeat
	}

	next := NoSeat
	smallest := NoSeat
	for _, seat := range activeSeats {
		if smallest == NoSeat || seat < smallest {
			smallest = seat
		}

		if seat > current && (next == NoSeat || seat < next) {
			next = seat
		}
	}

	if next == NoSeat {
		return smallest
	}

	return next
}

// BlindSeats returns the small- and big-blind seat positions.
// Multi-way, the blinds are the two seats after the dealer. Heads-up, the
// dealer posts the small blind and the other seat posts the big blind.
func BlindSeats(dealerIndex int, seats []Seat) (smallBlind, bigBlind int) {
	n := len(seats)
	if n == 2 {
		return seats[dealerIndex%n].Position, seats[(dealerIndex+1)%n].Position
	}

	return seats[(dealerIndex+1)%n].Position, seats[(dealerIndex+2)%n].Position
}

// FirstToAct returns the seat position that opens the betting for the phase,
// skipping seats that cannot act. Pre-flop the big blind forces action to the
// seat after it; heads-up the dealer (small blind) acts first instead.
// Post-flop action starts at the small-blind seat.
func FirstToAct(dealerIndex int, phase Phase, seats []Seat) int {
	n := len(seats)
	if n < 2 {
		return NoSeat
	}

	var start int
	switch {
	case phase == PhasePreFlop && n > 2:
		start = (dealerIndex + 3) % n
	case phase == PhasePreFlop:
		// heads-up the dealer posts the small blind and acts first
		start = dealerIndex % n
	default:
		// the small-blind seat; heads-up this is the big blind (non-dealer)
		start = (dealerIndex + 1) % n
	}

	for i := 0; i < n; i++ {
		s := seats[(start+i)%n]
		if s.canAct() {
			return s.Position
		}
	}

	return NoSeat
}

func indexOfPosition(position int, seats []Seat) int {
	for i, s := range seats {
		if s.Position == position {
			return i
		}
	}

	return -1
}
