package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Hub pushes live trip updates to connected riders. Each client watches a
// single trip; Broadcast fans a payload out to everyone on that trip.
type Hub struct {
	// clients keyed by trip ID
	clients map[string]map[*Client]bool

	broadcast  chan tripMessage
	register   chan *Client
	unregister chan *Client

	mu  sync.RWMutex
	log *zap.Logger
}

type tripMessage struct {
	tripID string
	data   []byte
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	tripID string
	userID string
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan tripMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.tripID] == nil {
				h.clients[client.tripID] = make(map[*Client]bool)
			}
			h.clients[client.tripID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.clients[client.tripID]; ok {
				if _, ok := watchers[client]; ok {
					delete(watchers, client)
					close(client.send)
					if len(watchers) == 0 {
						delete(h.clients, client.tripID)
					}
				}
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.tripID] {
				select {
				case client.send <- msg.data:
				default:
					close(client.send)
					delete(h.clients[msg.tripID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends v as JSON to every client watching tripID.
func (h *Hub) Broadcast(tripID string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("Failed to marshal websocket payload", zap.Error(err))
		return
	}
	h.broadcast <- tripMessage{tripID: tripID, data: data}
}

func (h *Hub) AddClient(conn *websocket.Conn, tripID, userID string) {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		tripID: tripID,
		userID: userID,
	}
	client.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Clients only listen on this socket; the read loop exists to notice
		// disconnects and process control frames.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Flush anything already queued into the same frame.
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
