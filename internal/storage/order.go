package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder вставляет новый заказ и возвращает его с проставленным id.
	// Заказ после вставки неизменяем.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (session_id, customer_name, customer_email, customer_phone, address, total_amount, status, items, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		order.SessionID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.Address, order.TotalAmount, order.Status, order.Items, order.CreatedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = id
	return order, nil
}
