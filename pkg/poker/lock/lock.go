// Package lock provides the per-(table, player) action locks and optimistic
// version checks that prevent double-processing of concurrent action
// submissions. Managers are constructed and injected by the hosting process;
// there is no package-level singleton.
package lock

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is how long a lock may be held before it is treated as
// abandoned and superseded
const DefaultTimeout = 5 * time.Second

// ErrLockHeld is an error when an action is already in flight for the
// (table, player) pair. The caller may retry once the action settles.
var ErrLockHeld = errors.New("an action is already in flight for this player")

type lockKey struct {
	table  string
	player int64
}

type actionLock struct {
	id         string
	actionType string
	createdAt  time.Time
}

// Manager issues at most one in-flight action lock per (table, player) pair
type Manager struct {
	mu      sync.Mutex
	timeout time.Duration
	locks   map[lockKey]*actionLock

	// now is swapped out by tests
	now func() time.Time
}

// NewManager returns a lock manager. A non-positive timeout falls back to
// DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Manager{
		timeout: timeout,
		locks:   make(map[lockKey]*actionLock),
		now:     time.Now,
	}
}

// Acquire obtains the action lock for the (table, player) pair and returns
// the lock ID. A lock older than the timeout is treated as abandonment and
// superseded; a live lock causes ErrLockHeld.
func (m *Manager) Acquire(table string, player int64, actionType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := lockKey{table: table, player: player}
	if existing, ok := m.locks[key]; ok {
		if m.now().Sub(existing.createdAt) < m.timeout {
			return "", ErrLockHeld
		}

		// stale lock: purge and supersede
		delete(m.locks, key)
	}

	l := &actionLock{
		id:         uuid.New().String(),
		actionType: actionType,
		createdAt:  m.now(),
	}
	m.locks[key] = l

	return l.id, nil
}

// Release frees the lock if lockID matches the current holder. Releasing an
// unheld or already-released lock is a no-op, so callers can defer it.
func (m *Manager) Release(table string, player int64, lockID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := lockKey{table: table, player: player}
	if existing, ok := m.locks[key]; ok && existing.id == lockID {
		delete(m.locks, key)
	}
}
