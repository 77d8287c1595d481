package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pingscomm/shop-backend/internal/lib/cartevents"
)

// CartEventsHandler обрабатывает запрос GET /api/cart/{sessionID}/events:
// отдаёт изменения корзины сессии потоком server-sent events, чтобы
// клиенту не приходилось опрашивать корзину повторно. Поток живёт,
// пока клиент держит соединение.
func CartEventsHandler(log *slog.Logger, bus *cartevents.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartEventsHandler"
		logger := log.With(slog.String("op", op))

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeMessage(logger, w, http.StatusInternalServerError, "Streaming unsupported")
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		events, cancel := bus.Subscribe()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, open := <-events:
				if !open {
					return
				}
				// шина общая на все сессии, фильтруем по своей
				if event.SessionID != sessionID {
					continue
				}
				fmt.Fprintf(w, "data: {\"op\":\"%s\"}\n\n", event.Op)
				flusher.Flush()
			}
		}
	}
}
