// Package stream fans dashboard envelopes out to live websocket clients.
package stream

import (
	"context"
	"encoding/json"
	"sync"

	"safety_monitor/internal/logger"
	"safety_monitor/internal/metrics"
	"safety_monitor/internal/models"
)

const (
	broadcastQueue = 256
	clientBuffer   = 32
)

// Client is one subscriber. Send is closed by the hub on unregister or
// when the client falls behind.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub maintains the set of active clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	log        *logger.Logger

	mu    sync.RWMutex
	count int
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the client set until ctx is canceled; all clients are then closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount()
			h.log.Infow("stream_client_registered", "client", c.ID)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Infow("stream_client_unregistered", "client", c.ID)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// slow consumer
					metrics.StreamDrops.Inc()
					h.drop(c)
					h.log.Warnw("stream_client_dropped", "client", c.ID)
				}
			}
		}
	}
}

// Register adds a client and returns it. ok is false once the hub stopped.
func (h *Hub) Register(ctx context.Context, id string) (*Client, bool) {
	c := &Client{ID: id, Send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
		return c, true
	case <-ctx.Done():
		return nil, false
	case <-h.done:
		return nil, false
	}
}

// Unregister removes c; safe to call for clients the hub already dropped.
func (h *Hub) Unregister(ctx context.Context, c *Client) {
	select {
	case h.unregister <- c:
	case <-ctx.Done():
	case <-h.done:
	}
}

// Publish marshals env and queues it without blocking; a full queue drops
// the message.
func (h *Hub) Publish(_ context.Context, env models.Envelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		h.log.Errorw("stream_marshal_failed", "err", err, "type", env.Type)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		metrics.StreamDrops.Inc()
	}
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.Send)
	h.setCount()
}

func (h *Hub) closeAll() {
	for c := range h.clients {
		h.drop(c)
	}
}

func (h *Hub) setCount() {
	h.mu.Lock()
	h.count = len(h.clients)
	h.mu.Unlock()
	metrics.StreamClients.Set(float64(h.count))
}
