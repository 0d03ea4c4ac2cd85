package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"anagram-quiz-service/internal/command"
	"anagram-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler connects chat clients to the dispatcher. Every connection joins
// the room of its channel; replies are broadcast to the whole room.
type WSHandler struct {
	dispatcher *command.Dispatcher
	upgrader   websocket.Upgrader
	logger     *zap.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

type client struct {
	send chan outboundMessage
	done chan struct{}
}

func NewWSHandler(dispatcher *command.Dispatcher, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		dispatcher: dispatcher,
		logger:     logger,
		rooms:      make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type textPayload struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and routes chat messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	userID := r.URL.Query().Get("user")
	displayName := r.URL.Query().Get("name")
	if channel == "" || userID == "" || displayName == "" {
		http.Error(w, "missing channel, user, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{
		send: make(chan outboundMessage, 16),
		done: make(chan struct{}),
	}
	h.join(channel, c)
	defer h.leave(channel, c)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-c.send:
				if err := conn.WriteJSON(msg); err != nil {
					h.logger.Warn("ws write error", zap.Error(err))
					// unblocks the read loop so the client leaves its room
					_ = conn.Close()
					return
				}
			case <-c.done:
				return
			}
		}
	}()

	from := domain.Participant{ID: userID, Name: displayName}
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if inbound.Type != "message" {
			c.deliver(outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
			continue
		}
		var payload textPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.deliver(outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid message payload"}})
			continue
		}

		reply, err := h.dispatcher.Handle(r.Context(), channel, from, payload.Text)
		if err != nil {
			h.logger.Error("handle message", zap.String("channel", channel), zap.Error(err))
			c.deliver(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
			continue
		}
		for _, text := range reply.Messages {
			h.broadcast(channel, outboundMessage{Type: "say", Payload: textPayload{Text: text}})
		}
	}

	close(c.done)
	<-writerDone
}

func (h *WSHandler) join(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[channel]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[channel] = room
	}
	room[c] = struct{}{}
}

func (h *WSHandler) leave(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[channel]
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, channel)
	}
}

// broadcast delivers msg to a snapshot of the room, so a slow client never
// holds the rooms lock.
func (h *WSHandler) broadcast(channel string, msg outboundMessage) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[channel]))
	for c := range h.rooms[channel] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.deliver(msg)
	}
}

// deliver blocks until the writer takes msg or the connection is closing,
// so replies are never dropped for a live client.
func (c *client) deliver(msg outboundMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	}
}
