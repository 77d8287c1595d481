package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStorage описывает методы для работы со строками корзины.
// Уникальность пары (session_id, item_id) обеспечивается логикой
// сервиса, а не ограничением в БД.
type CartStorage interface {
	// GetCartItems возвращает все строки корзины для сессии.
	GetCartItems(ctx context.Context, sessionID string) ([]*models.CartItem, error)
	// GetCartItemBySessionAndItem ищет строку корзины по паре (сессия, товар).
	GetCartItemBySessionAndItem(ctx context.Context, sessionID string, itemID int64) (*models.CartItem, error)
	// AddCartItem вставляет новую строку корзины и возвращает её с id.
	AddCartItem(ctx context.Context, cartItem *models.CartItem) (*models.CartItem, error)
	// SetCartItemQuantity выставляет абсолютное количество для строки корзины.
	SetCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error)
	// RemoveCartItem удаляет строку корзины и возвращает удалённую строку;
	// если строки нет — ErrCartItemNotFound.
	RemoveCartItem(ctx context.Context, cartItemID int64) (*models.CartItem, error)
	// ClearCart удаляет все строки корзины для сессии.
	ClearCart(ctx context.Context, sessionID string) error
}

// cartRepository — конкретная реализация CartStorage.
type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт новый репозиторий корзины.
func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetCartItems(ctx context.Context, sessionID string) ([]*models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id, item_id, quantity FROM cart_items WHERE session_id = $1 ORDER BY id", sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cartItems []*models.CartItem
	for rows.Next() {
		cartItem := &models.CartItem{}
		if err := rows.Scan(&cartItem.ID, &cartItem.SessionID, &cartItem.ItemID, &cartItem.Quantity); err != nil {
			return nil, err
		}
		cartItems = append(cartItems, cartItem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cartItems, nil
}

func (r *cartRepository) GetCartItemBySessionAndItem(ctx context.Context, sessionID string, itemID int64) (*models.CartItem, error) {
	cartItem := &models.CartItem{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, session_id, item_id, quantity FROM cart_items WHERE session_id = $1 AND item_id = $2",
		sessionID, itemID)
	if err := row.Scan(&cartItem.ID, &cartItem.SessionID, &cartItem.ItemID, &cartItem.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return cartItem, nil
}

func (r *cartRepository) AddCartItem(ctx context.Context, cartItem *models.CartItem) (*models.CartItem, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO cart_items (session_id, item_id, quantity) VALUES ($1, $2, $3) RETURNING id",
		cartItem.SessionID, cartItem.ItemID, cartItem.Quantity,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	cartItem.ID = id
	return cartItem, nil
}

func (r *cartRepository) SetCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error) {
	cartItem := &models.CartItem{}
	row := r.db.QueryRowContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE id = $2 RETURNING id, session_id, item_id, quantity",
		quantity, cartItemID)
	if err := row.Scan(&cartItem.ID, &cartItem.SessionID, &cartItem.ItemID, &cartItem.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return cartItem, nil
}

func (r *cartRepository) RemoveCartItem(ctx context.Context, cartItemID int64) (*models.CartItem, error) {
	cartItem := &models.CartItem{}
	row := r.db.QueryRowContext(ctx,
		"DELETE FROM cart_items WHERE id = $1 RETURNING id, session_id, item_id, quantity", cartItemID)
	if err := row.Scan(&cartItem.ID, &cartItem.SessionID, &cartItem.ItemID, &cartItem.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return cartItem, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE session_id = $1", sessionID)
	return err
}
