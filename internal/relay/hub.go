// Package relay implements the fan-out hub between a cashier terminal and
// its customer display. Connections sharing a session key form a room, and
// every frame received from one member is forwarded verbatim to every
// member of the room, the sender included. The hub carries no business
// logic: it does not inspect, reorder, buffer or replay messages.
package relay

import (
	"context"
	"log/slog"
)

type frame struct {
	room string
	data []byte
}

// Hub owns all rooms. All state is confined to the Run goroutine;
// registration, unregistration and broadcast go through channels.
type Hub struct {
	logger  *slog.Logger
	metrics *Metrics

	register   chan *client
	unregister chan *client
	broadcast  chan frame

	rooms map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger, metrics *Metrics) *Hub {
	return &Hub{
		logger:     logger,
		metrics:    metrics,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan frame, 64),
		rooms:      make(map[string]map[*client]struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then severs every
// remaining connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for key, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, key)
			}
			h.logger.Info("relay hub stopped")
			return

		case c := <-h.register:
			room, ok := h.rooms[c.room]
			if !ok {
				room = make(map[*client]struct{})
				h.rooms[c.room] = room
				h.metrics.Sessions.Inc()
			}
			room[c] = struct{}{}
			h.metrics.Connections.Inc()
			h.logger.Info("relay client connected", slog.String("session", c.room), slog.Int("peers", len(room)))

		case c := <-h.unregister:
			h.drop(c)

		case f := <-h.broadcast:
			room := h.rooms[f.room]
			for c := range room {
				select {
				case c.send <- f.data:
					h.metrics.Messages.Inc()
				default:
					// Slow consumer: sever rather than block the room.
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	room, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	h.metrics.Connections.Dec()
	if len(room) == 0 {
		delete(h.rooms, c.room)
		h.metrics.Sessions.Dec()
	}
	h.logger.Info("relay client disconnected", slog.String("session", c.room))
}
