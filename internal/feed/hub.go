// Package feed streams staffing evaluation snapshots to WebSocket
// subscribers, typically wallboards polling current staffing health.
package feed

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/staffcast/staffcast/internal/metrics"
)

// Hub owns the set of connected feed clients and fans evaluation
// snapshots out to them. All map mutation happens on the Run goroutine
// or under mu.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With().Str("component", "feed").Logger(),
	}
}

// Run processes registrations and snapshot fan-out until the process
// exits. Start it once, on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case snapshot := <-h.broadcast:
			h.fanOut(snapshot)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.FeedClients.Inc()
	h.logger.Info().Str("client_id", c.id).Int("total_clients", total).Msg("client connected")
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.FeedClients.Dec()
	h.logger.Info().Str("client_id", c.id).Int("total_clients", len(h.clients)).Msg("client disconnected")
}

// Broadcast queues a snapshot for delivery to all connected clients.
// Never blocks the caller: when the hub's buffer is full the snapshot
// is dropped, the next evaluation supersedes it anyway.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Msg("feed buffer full, dropping snapshot")
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// fanOut delivers one snapshot to every client. A client whose send
// buffer is full is disconnected rather than allowed to stall the
// feed. Takes the write lock because stalled clients are removed in
// place.
func (h *Hub) fanOut(snapshot []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- snapshot:
		default:
			close(c.send)
			delete(h.clients, c)
			metrics.FeedClients.Dec()
			h.logger.Warn().Str("client_id", c.id).Msg("client send buffer full, closing connection")
		}
	}
}
