package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pingscomm/shop-backend/internal/service"
)

// CreateMessageHandler обрабатывает запрос POST /api/messages
func CreateMessageHandler(log *slog.Logger, messageService service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateMessageHandler"
		logger := log.With(slog.String("op", op))

		var input service.CreateMessageInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeMessage(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		message, err := messageService.CreateMessage(r.Context(), input)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to create message")
			return
		}
		writeJSON(logger, w, http.StatusCreated, message)
	}
}
