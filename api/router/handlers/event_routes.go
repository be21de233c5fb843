package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"querry/logger"

	"github.com/go-chi/chi/v5"
)

const sseKeepAlive = 15 * time.Second

func RegisterEventRoutes(r chi.Router, h *Handlers) {
	r.Get("/events", h.streamEvents)
}

// streamEvents relays bus events as Server-Sent Events until the client disconnects or
// the bus shuts down.
// @Summary Event stream
// @Tags Events
// @Produce text/event-stream
// @Success 200 {object} events.Event
// @Router /events [get]
func (h *Handlers) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorMessage(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub := h.svc.Bus().Subscribe()
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Error("streamEvents: Error encoding %s event: %v", ev.Kind, err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
			if dropped := sub.Dropped(); dropped > 0 {
				logger.Debug("streamEvents: subscriber has dropped %d event(s)", dropped)
			}
		}
	}
}
