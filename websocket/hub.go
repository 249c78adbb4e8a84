package websocket

import (
	"log"

	"github.com/gorilla/websocket"
)

// Notification is the event envelope pushed to dashboard clients.
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Hub fans notifications out to connected dashboard clients. It is
// broadcast-only: clients never send application messages back.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan Notification
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan Notification, 64),
	}
}

// Run owns the client set. All registration and broadcast traffic flows
// through the channels so no mutex is needed.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			log.Printf("WebSocket client connected (%d active)", len(h.clients))
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
				log.Printf("WebSocket client disconnected (%d active)", len(h.clients))
			}
		case notification := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(notification); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Broadcast queues a notification for all connected clients. It never
// blocks request handlers: when the queue is full the event is dropped.
func (h *Hub) Broadcast(n Notification) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- n:
	default:
		log.Printf("WebSocket broadcast queue full, dropping %s event", n.Type)
	}
}

// NotifyNewRequest announces a freshly submitted client request.
func (h *Hub) NotifyNewRequest(data interface{}) {
	h.Broadcast(Notification{
		Type:    "new_request",
		Message: "A new client request has been submitted",
		Data:    data,
	})
}

// NotifyRequestStatus announces a request status change.
func (h *Hub) NotifyRequestStatus(data interface{}) {
	h.Broadcast(Notification{
		Type:    "request_status",
		Message: "A client request status has changed",
		Data:    data,
	})
}

// NotifyArtisanContacted announces an artisan outreach on a request.
func (h *Hub) NotifyArtisanContacted(data interface{}) {
	h.Broadcast(Notification{
		Type:    "artisan_contacted",
		Message: "An artisan has been contacted for a request",
		Data:    data,
	})
}
