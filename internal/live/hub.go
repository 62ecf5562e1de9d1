// Package live pushes shopping list changes to WebSocket subscribers.
//
// A Hub keeps the set of connected clients per trip. One goroutine (Run)
// owns that set; Subscribe and Publish only talk to it over channels, so
// neither needs a lock on the client map.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// MessageTypeShoppingList is the type of every message the hub sends.
const MessageTypeShoppingList = "shopping_list"

// Message is the JSON frame sent to subscribers.
type Message struct {
	Type   string              `json:"type"`
	TripID uuid.UUID           `json:"tripId"`
	Data   domain.ShoppingList `json:"data"`
}

// Hub maintains the active clients and fans shopping lists out to them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.ShoppingList
	done       chan struct{}

	// clients is owned by Run.
	clients map[uuid.UUID]map[*Client]bool
	count   atomic.Int64

	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHub creates a hub. Browser upgrades are accepted only from
// allowedOrigins; requests without an Origin header are always accepted.
func NewHub(log *slog.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.ShoppingList, 64),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]bool),
		log:        log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send queue.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					h.drop(c)
				}
			}
			return nil

		case c := <-h.register:
			if h.clients[c.tripID] == nil {
				h.clients[c.tripID] = make(map[*Client]bool)
			}
			h.clients[c.tripID][c] = true
			h.count.Add(1)
			h.log.Debug("live client registered", "client_id", c.id, "trip_id", c.tripID)

		case c := <-h.unregister:
			if h.clients[c.tripID][c] {
				h.drop(c)
				h.log.Debug("live client unregistered", "client_id", c.id, "trip_id", c.tripID)
			}

		case list := <-h.broadcast:
			h.fanOut(list)
		}
	}
}

// Publish queues list for delivery to the subscribers of its trip.
// It never blocks; when the queue is full the update is dropped.
func (h *Hub) Publish(list domain.ShoppingList) {
	select {
	case h.broadcast <- list:
	default:
		h.log.Warn("live update dropped", "trip_id", list.TripID)
	}
}

// Subscribe upgrades the request to a WebSocket and registers it for the
// updates of tripID.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn("live upgrade failed", "error", err)
		return
	}

	c := newClient(h, conn, tripID)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) fanOut(list domain.ShoppingList) {
	set := h.clients[list.TripID]
	if len(set) == 0 {
		return
	}
	payload, err := json.Marshal(Message{Type: MessageTypeShoppingList, TripID: list.TripID, Data: list})
	if err != nil {
		h.log.Error("live: marshal message", "error", err)
		return
	}
	for c := range set {
		select {
		case c.send <- payload:
		default:
			// Slow consumer.
			h.drop(c)
		}
	}
}

// drop removes c and closes its send queue, which ends its write pump.
func (h *Hub) drop(c *Client) {
	set := h.clients[c.tripID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.tripID)
	}
	close(c.send)
	h.count.Add(-1)
}
