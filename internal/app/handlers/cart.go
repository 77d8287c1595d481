package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pingscomm/shop-backend/internal/service"
)

// AddToCartRequest — тело запроса POST /api/cart. Количество по
// умолчанию равно 1, если клиент его не прислал.
type AddToCartRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    int64  `json:"itemId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest — тело запроса PATCH /api/cart/{id}.
// Количество абсолютное, не дельта.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCartHandler обрабатывает запрос GET /api/cart/{sessionID}
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		sessionID := chi.URLParam(r, "sessionID")
		entries, err := cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to get cart")
			return
		}
		writeJSON(logger, w, http.StatusOK, entries)
	}
}

// CartTotalsHandler обрабатывает запрос GET /api/cart/{sessionID}/totals.
// Итоги считаются по актуальному содержимому корзины на сервере,
// чтобы странице оформления не приходилось пересчитывать их у клиента.
func CartTotalsHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartTotalsHandler"
		logger := log.With(slog.String("op", op))

		sessionID := chi.URLParam(r, "sessionID")
		totals, err := cartService.Totals(r.Context(), sessionID)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to calculate cart totals")
			return
		}
		writeJSON(logger, w, http.StatusOK, totals.Amounts())
	}
}

// AddToCartHandler обрабатывает запрос POST /api/cart
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		var req AddToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeMessage(logger, w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		cartItem, err := cartService.AddToCart(r.Context(), req.SessionID, req.ItemID, req.Quantity)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to add to cart")
			return
		}
		writeJSON(logger, w, http.StatusCreated, cartItem)
	}
}

// UpdateCartItemHandler обрабатывает запрос PATCH /api/cart/{id}
func UpdateCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeMessage(logger, w, http.StatusNotFound, "Cart item not found")
			return
		}

		var req UpdateCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeMessage(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		cartItem, err := cartService.UpdateCartItem(r.Context(), id, req.Quantity)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to update cart item")
			return
		}
		writeJSON(logger, w, http.StatusOK, cartItem)
	}
}

// RemoveFromCartHandler обрабатывает запрос DELETE /api/cart/{id}.
// Удаление идемпотентно: несуществующий id — это всё равно 204.
func RemoveFromCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveFromCartHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := cartService.RemoveFromCart(r.Context(), id); err != nil {
			handleServiceError(logger, w, err, "Failed to remove cart item")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
