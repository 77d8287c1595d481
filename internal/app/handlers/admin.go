package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pingscomm/shop-backend/internal/service"
)

// UpdateItemVisibilityRequest — тело запроса PATCH /api/items/{id}.
// Единственное изменяемое поле — видимость в магазине.
type UpdateItemVisibilityRequest struct {
	IsInShop *bool `json:"isInShop"`
}

// UpdateItemVisibilityHandler обрабатывает запрос PATCH /api/items/{id}
func UpdateItemVisibilityHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateItemVisibilityHandler"
		logger := log.With(slog.String("op", op))

		var req UpdateItemVisibilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsInShop == nil {
			writeMessage(logger, w, http.StatusBadRequest, "isInShop must be a boolean")
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeMessage(logger, w, http.StatusNotFound, "Item not found")
			return
		}

		item, err := catalogService.SetItemVisibility(r.Context(), id, *req.IsInShop)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to update item")
			return
		}
		writeJSON(logger, w, http.StatusOK, item)
	}
}

// CreateServiceHandler обрабатывает запрос POST /api/services.
// Новый товар создаётся скрытым из магазина.
func CreateServiceHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateServiceHandler"
		logger := log.With(slog.String("op", op))

		var input service.CreateItemInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeMessage(logger, w, http.StatusBadRequest, "Missing required fields")
			return
		}

		item, err := catalogService.CreateItem(r.Context(), input)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to create service")
			return
		}
		writeJSON(logger, w, http.StatusCreated, item)
	}
}

// DeleteServiceHandler обрабатывает запрос DELETE /api/services/{id}
func DeleteServiceHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteServiceHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			// удаление несуществующего товара не является ошибкой
			writeMessage(logger, w, http.StatusOK, "Service deleted")
			return
		}

		if err := catalogService.DeleteItem(r.Context(), id); err != nil {
			handleServiceError(logger, w, err, "Failed to delete service")
			return
		}
		writeMessage(logger, w, http.StatusOK, "Service deleted")
	}
}
