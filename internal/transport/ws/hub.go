// Package ws
package ws

import (
	"context"
	"encoding/json"

	"perfil/internal/domain"
	"perfil/internal/logger"
)

// Hub fans emitted notifications out to every connected client. It is the
// toast renderer's transport: fire-and-forget, no acknowledgement.
type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.Notification

	log logger.Logger
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients: make(map[*Client]bool),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.Notification, 100),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			if !h.clients[client] {
				continue
			}

			delete(h.clients, client)
			close(client.send)
			h.log.Info("ws: client unregistered", "total_clients", len(h.clients))

		case notification := <-h.broadcast:
			payload, err := json.Marshal(notification)
			if err != nil {
				h.log.Error("ws: failed to marshal notification", "error", err)
				continue
			}

			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow client, drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Notify implements domain.Notifier.
func (h *Hub) Notify(n domain.Notification) {
	select {
	case h.broadcast <- n:
	case <-h.ctx.Done():
	}
}
