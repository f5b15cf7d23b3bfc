package mux

import (
	"encoding/json"
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// getTableIDWS streams the spectator view of the table. A frame is pushed on
// connect and after every state change.
func (m *Mux) getTableIDWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := m.table(gmux.Vars(r)["id"])
		if t == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.logger.WithError(err).Error("could not upgrade websocket")
			return
		}

		ch := t.subscribe()

		// read pump: we ignore client messages, but reading is how we learn
		// the client went away
		go func() {
			defer t.unsubscribe(ch)
			defer conn.Close()

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go func() {
			defer conn.Close()

			for msg := range ch {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()
	}
}

func (t *liveTable) subscribe() chan []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan []byte, 16)
	t.subscribers[ch] = true

	if b, err := json.Marshal(t.game.State(0)); err == nil {
		ch <- b
	}

	return ch
}

func (t *liveTable) unsubscribe(ch chan []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.subscribers[ch] {
		delete(t.subscribers, ch)
		close(ch)
	}
}

// broadcastLocked pushes the spectator state to every subscriber. A consumer
// that cannot keep up misses frames instead of blocking the table. Must be
// called with t.mu held.
func (t *liveTable) broadcastLocked() {
	b, err := json.Marshal(t.game.State(0))
	if err != nil {
		t.logger.WithError(err).Error("could not marshal table state")
		return
	}

	for ch := range t.subscribers {
		select {
		case ch <- b:
		default:
		}
	}
}
