package mux

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"cardroom-server/internal/util"
	"cardroom-server/pkg/poker/action"
	"cardroom-server/pkg/poker/holdem"
	"cardroom-server/pkg/poker/lock"
	"cardroom-server/pkg/poker/turn"
	"cardroom-server/pkg/token"
)

const tableIDLength = 12

// liveTable pairs a game with the scheduling the engine leaves to its host:
// the all-in runout timer, the turn timer, and the websocket feed
type liveTable struct {
	mu   sync.Mutex
	id   string
	name string
	game *holdem.Game

	logger       logrus.FieldLogger
	advanceDelay time.Duration
	turnTimeout  time.Duration

	turnTimer   *time.Timer
	subscribers map[chan []byte]bool
}

type postTableRequest struct {
	Name       string `json:"name"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
	ShortDeck  bool   `json:"shortDeck"`
	Players    []struct {
		PlayerID int64 `json:"playerId"`
		Seat     int   `json:"seat"`
		Chips    int   `json:"chips"`
	} `json:"players"`
}

type tableResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	State *holdem.State `json:"state"`
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postTableRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		options := holdem.DefaultOptions()
		options.SmallBlind = m.smallBlind
		options.BigBlind = m.bigBlind
		options.MaxBet = m.maxBet
		options.ActionCooldown = m.cooldown
		options.ShortDeck = payload.ShortDeck
		if payload.SmallBlind > 0 {
			options.SmallBlind = payload.SmallBlind
		}
		if payload.BigBlind > 0 {
			options.BigBlind = payload.BigBlind
		}

		seated := make([]holdem.Seated, len(payload.Players))
		for i, p := range payload.Players {
			seated[i] = holdem.Seated{ID: p.PlayerID, Seat: p.Seat, Chips: p.Chips}
		}

		id, err := token.Generate(tableIDLength)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		logger := m.logger.WithField("table", id)
		game, err := holdem.NewGame(logger, seated, options)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		name := payload.Name
		if name == "" {
			name = util.GetRandomName()
		}

		t := &liveTable{
			id:           id,
			name:         name,
			game:         game,
			logger:       logger,
			advanceDelay: m.advanceDelay,
			turnTimeout:  m.turnTimeout,
			subscribers:  make(map[chan []byte]bool),
		}
		m.addTable(t)

		logger.WithField("name", name).Info("table created")
		writeJSON(w, http.StatusCreated, tableResponse{ID: id, Name: name, State: game.State(0)})
	}
}

func (m *Mux) getTableID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		var viewer int64
		if s := r.FormValue("playerId"); s != "" {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			viewer = id
		}

		t.mu.Lock()
		state := t.game.State(viewer)
		t.mu.Unlock()

		writeJSON(w, http.StatusOK, tableResponse{ID: t.id, Name: t.name, State: state})
	}
}

func (m *Mux) getTableIDEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		t.mu.Lock()
		events := t.game.Events()
		t.mu.Unlock()

		writeJSON(w, http.StatusOK, events)
	}
}

type seatRequest struct {
	PlayerID int64 `json:"playerId"`
	Seat     int   `json:"seat"`
	Chips    int   `json:"chips"`
}

func (m *Mux) postTableIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		var payload seatRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		if err := t.game.AddPlayer(payload.PlayerID, payload.Seat, payload.Chips); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, holdem.ErrHandInProgress) {
				status = http.StatusConflict
			}

			writeJSONError(w, status, err)
			return
		}

		t.broadcastLocked()
		writeJSON(w, http.StatusCreated, tableResponse{ID: t.id, Name: t.name, State: t.game.State(payload.PlayerID)})
	}
}

func (m *Mux) postTableIDDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		if err := t.game.StartHand(); err != nil {
			writeJSONError(w, http.StatusConflict, err)
			return
		}

		t.broadcastLocked()
		t.scheduleLocked()

		writeJSON(w, http.StatusOK, tableResponse{ID: t.id, Name: t.name, State: t.game.State(0)})
	}
}

type actionRequest struct {
	PlayerID int64         `json:"playerId"`
	Action   string        `json:"action"`
	Amount   interface{}   `json:"amount,omitempty"`
	Version  *lock.Version `json:"version,omitempty"`
}

func (m *Mux) postTableIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		var payload actionRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		actionType, err := action.FromString(payload.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		lockID, err := m.locks.Acquire(t.id, payload.PlayerID, string(actionType))
		if err != nil {
			writeJSONError(w, actionErrorStatus(err), err)
			return
		}
		defer m.locks.Release(t.id, payload.PlayerID, lockID)

		t.mu.Lock()
		defer t.mu.Unlock()

		// a stale client snapshot means the state moved underneath the
		// player; reject rather than apply against the wrong state
		if payload.Version != nil {
			if err := payload.Version.Check(t.game.Version()); err != nil {
				writeJSONError(w, actionErrorStatus(err), err)
				return
			}
		}

		req := action.Request{
			Type:   actionType,
			Amount: action.SanitizeAmount(payload.Amount, t.game.Options().MaxBet),
		}

		if err := t.game.ApplyAction(payload.PlayerID, req); err != nil {
			writeJSONError(w, actionErrorStatus(err), err)
			return
		}

		t.broadcastLocked()
		t.scheduleLocked()

		writeJSON(w, http.StatusOK, tableResponse{ID: t.id, Name: t.name, State: t.game.State(payload.PlayerID)})
	}
}

func actionErrorStatus(err error) int {
	switch {
	case errors.Is(err, lock.ErrLockHeld), errors.Is(err, lock.ErrStaleVersion):
		return http.StatusConflict
	case errors.Is(err, holdem.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, holdem.ErrActionTooFast):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// scheduleLocked arms whichever timer the new state calls for: the runout
// timer when everyone is all-in, or the turn timer for the current actor.
// Must be called with t.mu held.
func (t *liveTable) scheduleLocked() {
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}

	if t.game.PendingAdvance() {
		time.AfterFunc(t.advanceDelay, t.advance)
		return
	}

	actorID, ok := t.game.CurrentActorID()
	if !ok || t.turnTimeout <= 0 {
		return
	}

	// capture the version so an action that lands before the timer fires
	// invalidates the fold
	version := t.game.Version()
	t.turnTimer = time.AfterFunc(t.turnTimeout, func() {
		t.foldExpiredTurn(actorID, version)
	})
}

// advance runs the next street of an all-in runout
func (t *liveTable) advance() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.game.PendingAdvance() {
		return
	}

	if err := t.game.Advance(); err != nil {
		t.logger.WithError(err).Error("could not advance the hand")
		return
	}

	if t.game.Phase() != turn.PhaseEnded {
		t.logger.WithField("phase", t.game.Phase().String()).Debug("advanced all-in runout")
	}

	t.broadcastLocked()
	t.scheduleLocked()
}

// foldExpiredTurn folds the player whose turn timer ran out. If the state
// moved since the timer was armed, the player acted in time and the fold is
// dropped.
func (t *liveTable) foldExpiredTurn(playerID int64, version lock.Version) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := version.Check(t.game.Version()); err != nil {
		return
	}

	if err := t.game.ForceFold(playerID); err != nil {
		t.logger.WithError(err).WithField("player", playerID).Error("could not fold expired turn")
		return
	}

	t.logger.WithField("player", playerID).Info("folded player on turn timeout")
	t.broadcastLocked()
	t.scheduleLocked()
}
