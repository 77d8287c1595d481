package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

var ErrItemNotFound = errors.New("item not found")

// ItemStorage описывает методы для работы с товарами каталога.
type ItemStorage interface {
	// GetItems возвращает все товары каталога.
	GetItems(ctx context.Context) ([]*models.Item, error)
	// GetItemsByCategory возвращает товары указанной категории.
	GetItemsByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error)
	// GetItemByID ищет товар по идентификатору.
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	// CreateItem вставляет новый товар и возвращает его с проставленным id.
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	// SetItemVisibility переключает видимость товара на странице магазина.
	SetItemVisibility(ctx context.Context, id int64, isInShop bool) (*models.Item, error)
	// DeleteItem удаляет товар; удаление несуществующего id не является ошибкой.
	DeleteItem(ctx context.Context, id int64) error
}

// itemRepository — конкретная реализация ItemStorage.
type itemRepository struct {
	db *sql.DB
}

// NewItemRepository создаёт новый репозиторий товаров.
func NewItemRepository(db *sql.DB) ItemStorage {
	return &itemRepository{db: db}
}

const itemColumns = "id, category_id, name, description, price, image_url, is_in_shop"

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.ImageURL, &item.IsInShop)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) GetItems(ctx context.Context) ([]*models.Item, error) {
	return r.queryItems(ctx, "SELECT "+itemColumns+" FROM items ORDER BY id")
}

func (r *itemRepository) GetItemsByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	return r.queryItems(ctx, "SELECT "+itemColumns+" FROM items WHERE category_id = $1 ORDER BY id", categoryID)
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = $1", id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO items (category_id, name, description, price, image_url, is_in_shop) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		item.CategoryID, item.Name, item.Description, item.Price, item.ImageURL, item.IsInShop,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	item.ID = id
	return item, nil
}

func (r *itemRepository) SetItemVisibility(ctx context.Context, id int64, isInShop bool) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE items SET is_in_shop = $1 WHERE id = $2 RETURNING "+itemColumns,
		isInShop, id,
	)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	return err
}
