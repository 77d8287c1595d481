package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/lib/cartevents"
	"github.com/pingscomm/shop-backend/internal/storage"
)

// notifyTimeout ограничивает каждую попытку уведомления, чтобы
// медленная доставка почты не задерживала ответ на заказ.
const notifyTimeout = 10 * time.Second

// OrderService — оформление заказа: валидация, сохранение снапшота,
// best-effort уведомления и очистка корзины.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
}

// CreateOrderInput — входные данные оформления заказа. Снапшот позиций
// и итоговая сумма приходят от вызывающей стороны уже посчитанными.
type CreateOrderInput struct {
	SessionID     string `json:"sessionId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=10"`
	Address       string `json:"address" validate:"required"`
	TotalAmount   string `json:"totalAmount" validate:"required"`
	Items         string `json:"items" validate:"required"`
	CreatedAt     string `json:"createdAt" validate:"required"`
}

var orderFieldMessages = map[string]string{
	"SessionID":         "Session id is required",
	"CustomerName":      "Customer name is required",
	"CustomerEmail":     "Customer email is required",
	"CustomerPhone.min": "Phone number must be at least 10 digits",
	"CustomerPhone":     "Customer phone is required",
	"Address":           "Address is required",
	"TotalAmount":       "Total amount is required",
	"Items":             "Order items are required",
	"CreatedAt":         "Created at is required",
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	cartRepo  storage.CartStorage
	notifier  Notifier
	events    *cartevents.Bus
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage, cartRepo storage.CartStorage, notifier Notifier, events *cartevents.Bus) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		notifier:  notifier,
		events:    events,
	}
}

// CreateOrder проводит заказ через единственный переход его жизненного
// цикла: создан — и всё. Последовательность: валидация, вставка заказа,
// два независимых уведомления (оператору и клиенту), очистка корзины.
// Заказ считается размещённым сразу после вставки: ошибки уведомлений
// логируются и не откатывают заказ, очистка корзины от них не зависит.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("sessionID", input.SessionID))

	if err := validate.Struct(input); err != nil {
		logger.Warn("invalid order input", slog.Any("error", err))
		return nil, NewValidationError(firstValidationMessage(err, orderFieldMessages))
	}

	order, err := s.orderRepo.CreateOrder(ctx, &models.Order{
		SessionID:     input.SessionID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		TotalAmount:   input.TotalAmount,
		Status:        models.OrderStatusPending,
		Items:         input.Items,
		CreatedAt:     input.CreatedAt,
	})
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	var lines []models.OrderLine
	if err := json.Unmarshal([]byte(order.Items), &lines); err != nil {
		// снапшот не разобрался — уведомления уйдут без таблицы позиций
		logger.Warn("failed to decode order items snapshot", slog.Any("error", err))
	}

	s.notify(ctx, logger, "admin notification", func(ctx context.Context) error {
		return s.notifier.OrderReceived(ctx, order, lines)
	})
	s.notify(ctx, logger, "customer confirmation", func(ctx context.Context) error {
		return s.notifier.OrderConfirmation(ctx, order, lines)
	})

	// корзина очищается строго после успешной вставки заказа
	if err := s.cartRepo.ClearCart(ctx, input.SessionID); err != nil {
		logger.Error("failed to clear cart after order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}
	s.events.Publish(cartevents.Event{SessionID: input.SessionID, Op: cartevents.OpClear})

	logger.Info("order created", slog.Int64("orderID", order.ID))
	return order, nil
}

// notify изолирует одну попытку уведомления: свой таймаут, ошибка
// только в лог.
func (s *orderService) notify(ctx context.Context, logger *slog.Logger, kind string, send func(ctx context.Context) error) {
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := send(notifyCtx); err != nil {
		logger.Error("failed to send "+kind, slog.Any("error", err))
	}
}
