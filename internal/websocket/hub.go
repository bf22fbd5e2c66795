package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// ShelfEvent tells connected terminals that a shelf's canonical layout
// changed and should be re-fetched.
type ShelfEvent struct {
	Type       string `json:"type"` // layout.committed, assignment.added, assignment.deleted
	BranchCode string `json:"branchCode"`
	ShelfCode  string `json:"shelfCode"`
}

// Hub maintains the set of active clients grouped by branch subscription
type Hub struct {
	// Registered clients map: ClientID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// Re-registering (e.g. a new SUBSCRIBE) just updates the entry
			h.clients[client.ClientID] = client
			h.mu.Unlock()
			log.Printf("🖥️ Terminal connected: %s (branch %q)", client.ClientID, client.BranchCode)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ClientID]; ok {
				delete(h.clients, client.ClientID)
				close(client.send)
				log.Printf("📴 Terminal disconnected: %s", client.ClientID)
			}
			h.mu.Unlock()
		}
	}
}

// NotifyShelfChanged broadcasts a shelf event to every client subscribed to
// the branch. Implements the planogram service's Notifier contract.
func (h *Hub) NotifyShelfChanged(branchCode, shelfCode, event string) {
	msg, err := json.Marshal(ShelfEvent{
		Type:       event,
		BranchCode: branchCode,
		ShelfCode:  shelfCode,
	})
	if err != nil {
		log.Printf("Error marshaling shelf event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.BranchCode != branchCode {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// Buffer full or client dead; drop the event
		}
	}
}
