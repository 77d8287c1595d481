package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pingscomm/shop-backend/internal/service"
	"github.com/pingscomm/shop-backend/internal/storage"
)

// writeJSON сериализует ответ; ошибки кодирования только логируются,
// статус к этому моменту уже отправлен.
func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeMessage отправляет стандартный конверт ошибки {"message": ...}.
func writeMessage(log *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(log, w, status, map[string]string{"message": message})
}

// handleServiceError транслирует ошибки сервисного слоя в HTTP-статусы:
// ValidationError — 400 с сообщением первого нарушенного поля,
// сентинелы "не найдено" — 404, всё остальное — 500 с fallback-текстом.
func handleServiceError(log *slog.Logger, w http.ResponseWriter, err error, fallback string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeMessage(log, w, http.StatusBadRequest, verr.Message)
		return
	}

	switch {
	case errors.Is(err, storage.ErrCategoryNotFound):
		writeMessage(log, w, http.StatusNotFound, "Category not found")
	case errors.Is(err, storage.ErrItemNotFound):
		writeMessage(log, w, http.StatusNotFound, "Item not found")
	case errors.Is(err, storage.ErrCartItemNotFound):
		writeMessage(log, w, http.StatusNotFound, "Cart item not found")
	default:
		log.Error("request failed", slog.Any("error", err))
		writeMessage(log, w, http.StatusInternalServerError, fallback)
	}
}
