// Package holdem implements the Texas Hold'em betting state machine. A Game
// is a short-lived, single-table computation: callers load state, apply one
// action, and persist the result. The package never performs I/O, never
// blocks, and never schedules its own timers; all-in runouts and turn timers
// are driven by the caller through Advance and ForceFold.
package holdem

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"cardroom-server/internal/rng"
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/lock"
	"cardroom-server/pkg/poker/potmanager"
	"cardroom-server/pkg/poker/turn"
)

// Options configures a table
type Options struct {
	SmallBlind int
	BigBlind   int

	// ShortDeck plays six-plus hold'em: a 36-card deck and flushes ranked
	// above full houses
	ShortDeck bool

	// ActionCooldown rejects a player's action submitted within this window
	// of their previous one
	ActionCooldown time.Duration

	// MaxBet caps any single wire amount before validation
	MaxBet int
}

// DefaultOptions returns the standard table configuration
func DefaultOptions() Options {
	return Options{
		SmallBlind:     25,
		BigBlind:       50,
		ActionCooldown: 400 * time.Millisecond,
		MaxBet:         1000000,
	}
}

// Seated describes a player joining a table
type Seated struct {
	ID    int64
	Seat  int
	Chips int
}

// Game is the authoritative state for one table. It is not safe for
// concurrent use; callers serialize access per table.
type Game struct {
	logger  logrus.FieldLogger
	options Options

	deck *deck.Deck
	rng  rng.Generator

	// players holds every seated player in table-join order. That order is
	// canonical for rotation; it is never re-sorted by seat number.
	players []*Player

	// inHand is the subset of players dealt into the current hand, still in
	// join order
	inHand []*Player

	phase      turn.Phase
	community  deck.Hand
	pot        int
	currentBet int
	minRaise   int

	dealerSeat     int
	currentActor   int
	lastRaiserSeat int

	sidePots potmanager.SidePots

	// committed is the total chips moved out of player stacks this hand. The
	// pot plus outstanding round bets must equal it after every mutation.
	committed int

	pendingAdvance bool

	events []*Event

	// now is swapped out by tests
	now func() time.Time
}

// NewGame seats the players at a new table. The slice order is the table-join
// order and determines rotation.
func NewGame(logger logrus.FieldLogger, seated []Seated, options Options) (*Game, error) {
	if len(seated) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	if options.SmallBlind <= 0 || options.BigBlind < options.SmallBlind {
		return nil, fmt.Errorf("invalid blinds: %d/%d", options.SmallBlind, options.BigBlind)
	}

	if options.MaxBet <= 0 {
		options.MaxBet = DefaultOptions().MaxBet
	}

	players := make([]*Player, 0, len(seated))
	seenSeat := make(map[int]bool)
	seenID := make(map[int64]bool)
	for _, s := range seated {
		if s.Seat < 0 || seenSeat[s.Seat] {
			return nil, fmt.Errorf("invalid or duplicate seat: %d", s.Seat)
		}

		if seenID[s.ID] {
			return nil, fmt.Errorf("duplicate player: %d", s.ID)
		}

		if s.Chips <= 0 {
			return nil, fmt.Errorf("player %d must buy in with chips", s.ID)
		}

		seenSeat[s.Seat] = true
		seenID[s.ID] = true
		players = append(players, newPlayer(s.ID, s.Seat, s.Chips))
	}

	return &Game{
		logger:         logger,
		options:        options,
		rng:            rng.Crypto{},
		players:        players,
		phase:          turn.PhaseWaiting,
		dealerSeat:     turn.NoSeat,
		currentActor:   turn.NoSeat,
		lastRaiserSeat: turn.NoSeat,
		now:            time.Now,
	}, nil
}

// AddPlayer seats a new player at the table. Players may only join between
// hands; they are dealt in at the next StartHand.
func (g *Game) AddPlayer(id int64, seat, chips int) error {
	if g.phase != turn.PhaseWaiting && g.phase != turn.PhaseEnded {
		return ErrHandInProgress
	}

	if chips <= 0 {
		return fmt.Errorf("player %d must buy in with chips", id)
	}

	if g.playerByID(id) != nil {
		return fmt.Errorf("duplicate player: %d", id)
	}

	for _, p := range g.players {
		if p.Seat == seat {
			return fmt.Errorf("invalid or duplicate seat: %d", seat)
		}
	}

	if seat < 0 {
		return fmt.Errorf("invalid or duplicate seat: %d", seat)
	}

	g.players = append(g.players, newPlayer(id, seat, chips))
	g.logger.WithFields(logrus.Fields{
		"player": id,
		"seat":   seat,
		"chips":  chips,
	}).Info("player seated")

	return nil
}

// SetRandomGenerator swaps the shuffle source. A seeded generator replays a
// hand deterministically.
func (g *Game) SetRandomGenerator(r rng.Generator) {
	g.rng = r
}

// StartHand shuffles, deals hole cards, posts the blinds, and opens the
// pre-flop betting round
func (g *Game) StartHand() error {
	if g.phase != turn.PhaseWaiting && g.phase != turn.PhaseEnded {
		return ErrHandInProgress
	}

	inHand := make([]*Player, 0, len(g.players))
	activeSeats := make([]int, 0, len(g.players))
	for _, p := range g.players {
		if p.chips > 0 {
			inHand = append(inHand, p)
			activeSeats = append(activeSeats, p.Seat)
		}
	}

	if len(inHand) < 2 {
		return ErrNotEnoughPlayers
	}

	for _, p := range g.players {
		p.newHand()
	}

	g.inHand = inHand
	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.committed = 0
	g.currentBet = 0
	g.minRaise = g.options.BigBlind
	g.lastRaiserSeat = turn.NoSeat
	g.sidePots = nil
	g.pendingAdvance = false

	if g.dealerSeat == turn.NoSeat {
		g.dealerSeat = activeSeats[0]
	} else {
		g.dealerSeat = turn.NextDealer(g.dealerSeat, activeSeats)
	}

	if g.options.ShortDeck {
		g.deck = deck.NewShortDeck()
	} else {
		g.deck = deck.New()
	}
	g.deck.SetRandomGenerator(g.rng)
	g.deck.Shuffle()

	for i := 0; i < 2; i++ {
		for _, p := range inHand {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.holeCards.AddCard(card)
		}
	}

	g.phase = turn.PhasePreFlop
	g.recordEvent(0, eventHandStart, 0)

	seats := g.seats()
	dealerIndex := g.dealerIndex()
	sbSeat, bbSeat := turn.BlindSeats(dealerIndex, seats)
	g.postBlind(sbSeat, g.options.SmallBlind, eventSmallBlind)
	g.postBlind(bbSeat, g.options.BigBlind, eventBigBlind)
	g.currentBet = g.options.BigBlind

	g.currentActor = turn.FirstToAct(dealerIndex, g.phase, g.seats())
	if g.currentActor == turn.NoSeat {
		// the blinds put everyone all-in
		g.pendingAdvance = true
	}

	g.logger.WithFields(logrus.Fields{
		"dealer":     g.dealerSeat,
		"smallBlind": sbSeat,
		"bigBlind":   bbSeat,
		"players":    len(inHand),
	}).Info("hand started")

	return g.checkChipConservation()
}

// postBlind commits up to amount from the seat's stack. A short stack posts
// all-in for less.
func (g *Game) postBlind(seat, amount int, event string) {
	p := g.playerAtSeat(seat)
	if p == nil {
		return
	}

	if amount > p.chips {
		amount = p.chips
	}

	p.commit(amount)
	g.committed += amount
	g.recordEvent(p.ID, event, amount)
}

// Options returns the table configuration
func (g *Game) Options() Options {
	return g.options
}

// Phase returns the hand's current phase
func (g *Game) Phase() turn.Phase {
	return g.phase
}

// Pot returns the chips collected from completed betting rounds
func (g *Game) Pot() int {
	return g.pot
}

// CurrentBet returns the table bet to match this round
func (g *Game) CurrentBet() int {
	return g.currentBet
}

// DealerSeat returns the dealer's seat position
func (g *Game) DealerSeat() int {
	return g.dealerSeat
}

// CurrentActor returns the seat position whose turn it is, or turn.NoSeat
// when no action is pending
func (g *Game) CurrentActor() int {
	return g.currentActor
}

// CurrentActorID returns the player whose turn it is. The second return is
// false when no action is pending.
func (g *Game) CurrentActorID() (int64, bool) {
	p := g.playerAtSeat(g.currentActor)
	if g.currentActor == turn.NoSeat || p == nil {
		return 0, false
	}

	return p.ID, true
}

// Community returns the community cards dealt so far
func (g *Game) Community() deck.Hand {
	return g.community
}

// SidePots returns the pot layers as of the last closed betting round
func (g *Game) SidePots() potmanager.SidePots {
	return g.sidePots
}

// PendingAdvance returns true when every contesting player is all-in and the
// caller should schedule an Advance call to run out the next street
func (g *Game) PendingAdvance() bool {
	return g.pendingAdvance
}

// Players returns every seated player in table-join order
func (g *Game) Players() []*Player {
	return g.players
}

// Version snapshots the fields an action computation depends on, for the
// optimistic stale-write check
func (g *Game) Version() lock.Version {
	return lock.Version{
		Phase:        int(g.phase),
		CurrentActor: g.currentActor,
		CurrentBet:   g.currentBet,
	}
}

func (g *Game) playerByID(id int64) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

func (g *Game) playerAtSeat(seat int) *Player {
	for _, p := range g.inHand {
		if p.Seat == seat {
			return p
		}
	}

	return nil
}

func (g *Game) dealerIndex() int {
	for i, p := range g.inHand {
		if p.Seat == g.dealerSeat {
			return i
		}
	}

	return 0
}

func (g *Game) seats() []turn.Seat {
	seats := make([]turn.Seat, len(g.inHand))
	for i, p := range g.inHand {
		seats[i] = turn.Seat{
			Position: p.Seat,
			Folded:   p.folded,
			AllIn:    p.allIn,
		}
	}

	return seats
}

func (g *Game) betStates() []turn.BetState {
	states := make([]turn.BetState, len(g.inHand))
	for i, p := range g.inHand {
		states[i] = turn.BetState{
			Folded:   p.folded,
			AllIn:    p.allIn,
			HasActed: p.hasActed,
			Bet:      p.bet,
		}
	}

	return states
}

func (g *Game) lastRaiserIndex() int {
	if g.lastRaiserSeat == turn.NoSeat {
		return turn.NoSeat
	}

	for i, p := range g.inHand {
		if p.Seat == g.lastRaiserSeat {
			return i
		}
	}

	return turn.NoSeat
}

func (g *Game) nonFoldedCount() int {
	count := 0
	for _, p := range g.inHand {
		if !p.folded {
			count++
		}
	}

	return count
}

// checkChipConservation reconciles the pot, the outstanding round bets, and
// the per-hand totals against the chips that left player stacks. A mismatch
// is an integrity violation and must never be swallowed.
func (g *Game) checkChipConservation() error {
	bets := 0
	totals := 0
	for _, p := range g.inHand {
		bets += p.bet
		totals += p.totalBet
	}

	if g.pot+bets != g.committed || totals != g.committed {
		err := fmt.Errorf("%w: pot %d, bets %d, committed %d", potmanager.ErrPotMismatch, g.pot, bets, g.committed)
		g.logger.WithError(err).Error("chip conservation violated")
		return err
	}

	return nil
}
