package service

import (
	"context"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

// Notifier рассылает уведомления магазина. Все вызовы best-effort:
// сервисы логируют ошибку и продолжают работу, результат запроса от
// исхода доставки не зависит.
type Notifier interface {
	// OrderReceived уведомляет оператора о новом заказе.
	OrderReceived(ctx context.Context, order *models.Order, lines []models.OrderLine) error
	// OrderConfirmation отправляет клиенту подтверждение заказа.
	OrderConfirmation(ctx context.Context, order *models.Order, lines []models.OrderLine) error
	// ContactMessage пересылает оператору сообщение контактной формы.
	ContactMessage(ctx context.Context, message *models.Message) error
}
