package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pingscomm/shop-backend/internal/service"
)

// CreateOrderHandler обрабатывает запрос POST /api/orders: оформление
// заказа из корзины. Успешный ответ — 201 с созданным заказом;
// ошибки уведомлений на ответ не влияют.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var input service.CreateOrderInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeMessage(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		order, err := orderService.CreateOrder(r.Context(), input)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to create order")
			return
		}
		writeJSON(logger, w, http.StatusCreated, order)
	}
}
