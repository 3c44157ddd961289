package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types pushed to connected dashboards
const (
	EventFreightCreated  = "freight.created"
	EventFreightUpdated  = "freight.updated"
	EventFreightDeleted  = "freight.deleted"
	EventClosureCreated  = "closure.created"
	EventClosureUpdated  = "closure.updated"
	EventClosureDeleted  = "closure.deleted"
	EventDraftsUpdated   = "drafts.updated"
	EventCatalogUpdated  = "catalog.updated"
	EventTaskAssigned    = "task.assigned"
	EventFinanceUpdated  = "finance.updated"
	EventCalendarUpdated = "calendar.updated"
)

// Event is the JSON frame sent to clients
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Publisher is what handlers use to notify dashboards.
type Publisher interface {
	Publish(eventType string, data interface{})
	PublishToProfile(profileID, eventType string, data interface{})
}

type outbound struct {
	profileID string // empty means every client
	payload   []byte
}

// Hub maintains active WebSocket connections and fans events out to them.
// A profile may be connected from several tabs at once.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("✅ [WEBSOCKET] Client connected: %s (%s), total %d", client.ProfileID, client.Role, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("🔴 [WEBSOCKET] Client disconnected: %s, remaining %d", client.ProfileID, len(h.clients))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if msg.profileID != "" && client.ProfileID != msg.profileID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					close(client.send)
					delete(h.clients, client)
					log.Printf("⚠️ Client buffer full, disconnecting: %s", client.ProfileID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish sends an event to every connected client
func (h *Hub) Publish(eventType string, data interface{}) {
	h.enqueue("", eventType, data)
}

// PublishToProfile sends an event to the connections of one profile
func (h *Hub) PublishToProfile(profileID, eventType string, data interface{}) {
	h.enqueue(profileID, eventType, data)
}

func (h *Hub) enqueue(profileID, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data, Timestamp: time.Now().Unix()})
	if err != nil {
		log.Printf("❌ Failed to marshal %s event: %v", eventType, err)
		return
	}
	select {
	case h.broadcast <- outbound{profileID: profileID, payload: payload}:
	default:
		log.Printf("⚠️ Event queue full, dropping %s", eventType)
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
