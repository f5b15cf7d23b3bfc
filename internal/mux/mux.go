// Package mux exposes the card room over HTTP and websockets. It owns the
// table registry and the scheduling the game engine deliberately leaves to
// its caller: all-in runouts, turn timers, and broadcast of state changes.
package mux

import (
	"net/http"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"cardroom-server/internal/config"
	"cardroom-server/pkg/poker/lock"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	logger  logrus.FieldLogger
	locks   *lock.Manager

	cooldown     time.Duration
	advanceDelay time.Duration
	turnTimeout  time.Duration
	smallBlind   int
	bigBlind     int
	maxBet       int

	mu     sync.RWMutex
	tables map[string]*liveTable
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()

	this := &Mux{
		Router:       gmux.NewRouter(),
		version:      version,
		logger:       logrus.StandardLogger(),
		locks:        lock.NewManager(time.Duration(cfg.Timing.LockTimeoutMS) * time.Millisecond),
		cooldown:     time.Duration(cfg.Timing.ActionCooldownMS) * time.Millisecond,
		advanceDelay: time.Duration(cfg.Timing.AdvanceDelayMS) * time.Millisecond,
		turnTimeout:  time.Duration(cfg.Timing.TurnTimeoutMS) * time.Millisecond,
		smallBlind:   cfg.Table.SmallBlind,
		bigBlind:     cfg.Table.BigBlind,
		maxBet:       cfg.Table.MaxBet,
		tables:       make(map[string]*liveTable),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

	tr := r.PathPrefix("/table/{id:[A-Za-z0-9_-]+}").Subrouter()
	tr.Methods(http.MethodGet).Path("").Handler(this.getTableID())
	tr.Methods(http.MethodGet).Path("/events").Handler(this.getTableIDEvents())
	tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableIDWS())
	tr.Methods(http.MethodPost).Path("/seat").Handler(this.postTableIDSeat())
	tr.Methods(http.MethodPost).Path("/deal").Handler(this.postTableIDDeal())
	tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableIDAction())

	return this
}

func (m *Mux) table(id string) *liveTable {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tables[id]
}

func (m *Mux) addTable(t *liveTable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[t.id] = t
}
