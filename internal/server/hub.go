package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendBuffer = 256

// session is one connected client. Writes go through a buffered channel
// drained by a dedicated writer goroutine, so no broadcast ever blocks on a
// slow socket.
type session struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func (s *session) writeLoop() {
	for msg := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Error("session write failed", "session", s.id, "err", err)
			s.conn.Close()
			// Drain until Unregister closes the channel.
			for range s.send {
			}
			return
		}
	}
	s.conn.Close()
}

// Hub tracks live sessions and fans outbound frames to them. It implements
// sim.EventSink.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*session),
	}
}

// Register adds a connection under a fresh session id and starts its writer.
func (h *Hub) Register(conn *websocket.Conn) string {
	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	go s.writeLoop()
	return s.id
}

// Unregister drops the session and closes its writer.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	if ok {
		close(s.send)
	}
}

func (h *Hub) NumSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast queues a frame for every session.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	var stale []string
	for _, s := range h.sessions {
		if !enqueue(s, msg) {
			stale = append(stale, s.id)
		}
	}
	h.mu.RUnlock()
	h.evict(stale)
}

// BroadcastExcept queues a frame for every session but one.
func (h *Hub) BroadcastExcept(id string, msg []byte) {
	h.mu.RLock()
	var stale []string
	for _, s := range h.sessions {
		if s.id == id {
			continue
		}
		if !enqueue(s, msg) {
			stale = append(stale, s.id)
		}
	}
	h.mu.RUnlock()
	h.evict(stale)
}

// Send queues a frame for a single session. Unknown ids are a no-op.
func (h *Hub) Send(id string, msg []byte) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	full := ok && !enqueue(s, msg)
	h.mu.RUnlock()

	if full {
		h.evict([]string{id})
	}
}

// enqueue never blocks: it reports false when the session's buffer is full,
// which marks the session for eviction. A client that far behind is stalled
// or gone, and keeping it registered would leave a ghost tank in the arena.
func enqueue(s *session, msg []byte) bool {
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

// evict drops sessions whose buffers overflowed. Unregister closes the send
// channel, the writer then closes the socket, and the failing read loop tears
// down the session's tank. Cleanup runs outside the fan-out lock, the same
// deferred discipline the broadcast path uses for broken writes.
func (h *Hub) evict(ids []string) {
	for _, id := range ids {
		log.Warn("session buffer overflow, evicting", "session", id)
		h.Unregister(id)
	}
}
