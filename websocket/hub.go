package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types pushed to dashboards
const (
	NotificationTypeScheduleChange = "schedule_change"
	NotificationTypeDesignDecision = "design_decision"
	NotificationTypeSettlement     = "commission_settlement"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type         string      `json:"type"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	UserID       string      `json:"userID,omitempty"`
	RequiresAuth bool        `json:"requiresAuth,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID        primitive.ObjectID
	Conn          *websocket.Conn
	Authenticated bool
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients                map[primitive.ObjectID]*Client
	unauthenticatedClients map[*Client]bool
	register               chan *Client
	unregister             chan *Client
	mu                     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:                make(map[primitive.ObjectID]*Client),
		unauthenticatedClients: make(map[*Client]bool),
		register:               make(chan *Client),
		unregister:             make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.Authenticated && client.UserID != primitive.NilObjectID {
				h.clients[client.UserID] = client
			} else {
				h.unauthenticatedClients[client] = true
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if client.Authenticated && client.UserID != primitive.NilObjectID {
				if _, ok := h.clients[client.UserID]; ok {
					delete(h.clients, client.UserID)
				}
			} else {
				delete(h.unauthenticatedClients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID primitive.ObjectID, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// AuthenticateClient moves a client from unauthenticated to authenticated state
func (h *Hub) AuthenticateClient(client *Client, userID primitive.ObjectID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.unauthenticatedClients, client)

	client.Authenticated = true
	client.UserID = userID
	h.clients[userID] = client

	return nil
}

// NotifyScheduleChange tells an assignee their production or
// installation schedule changed
func (h *Hub) NotifyScheduleChange(userID primitive.ObjectID, scheduleData interface{}) error {
	return h.SendToUser(userID, Notification{
		Type:    NotificationTypeScheduleChange,
		Message: "A schedule you are assigned to has changed",
		Data:    scheduleData,
	})
}

// NotifyDesignDecision tells a designer their proof was reviewed
func (h *Hub) NotifyDesignDecision(userID primitive.ObjectID, designData interface{}) error {
	return h.SendToUser(userID, Notification{
		Type:    NotificationTypeDesignDecision,
		Message: "Your design version has been reviewed",
		Data:    designData,
	})
}

// NotifySettlement tells a user their monthly commissions were paid
func (h *Hub) NotifySettlement(userID primitive.ObjectID, paymentData interface{}) error {
	return h.SendToUser(userID, Notification{
		Type:    NotificationTypeSettlement,
		Message: "Your commission payment has been processed",
		Data:    paymentData,
	})
}
