// internal/server/sse.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/metrics"
)

// Event types pushed to connected frontends.
const (
	EventTelegramVerified = "TELEGRAM_VERIFIED"
	EventSuggestionsReady = "SUGGESTIONS_READY"
)

// Hub fans events out to every connected event-stream client.
type Hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	logger  logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[chan []byte]struct{}),
		logger:  log.With(map[string]interface{}{"component": "sse-hub"}),
	}
}

// Broadcast sends an event to all clients. Slow clients are skipped rather
// than blocking the sender.
func (h *Hub) Broadcast(eventType string, data map[string]interface{}) {
	payload := map[string]interface{}{
		"type":      eventType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range data {
		payload[k] = v
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("event encode failed", map[string]interface{}{
			"eventType": eventType,
			"error":     err.Error(),
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client <- encoded:
		default:
		}
	}
}

func (h *Hub) add() chan []byte {
	client := make(chan []byte, 8)
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	metrics.SSEClientsConnected.Inc()
	return client
}

func (h *Hub) remove(client chan []byte) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
	metrics.SSEClientsConnected.Dec()
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP implements the GET /events endpoint.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := h.add()
	defer h.remove(client)

	fmt.Fprint(w, "data: {\"message\":\"SSE connected\"}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-client:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
