package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/storage"
)

// CatalogService — операции чтения каталога и админские операции
// управления товарами. Тонкий слой над хранилищем.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	// ListItems возвращает товары, опционально отфильтрованные по slug
	// категории; неизвестный slug даёт пустой список, а не ошибку.
	ListItems(ctx context.Context, categorySlug string) ([]*models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	// CreateItem создаёт товар, скрытый из магазина до явного включения.
	CreateItem(ctx context.Context, input CreateItemInput) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	// SetItemVisibility переключает видимость товара на странице магазина.
	SetItemVisibility(ctx context.Context, id int64, isInShop bool) (*models.Item, error)
}

// CreateItemInput — входные данные админской операции создания товара.
type CreateItemInput struct {
	Name        string  `json:"name" validate:"required"`
	CategoryID  int64   `json:"categoryId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       *string `json:"price"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
}

type catalogService struct {
	log          *slog.Logger
	categoryRepo storage.CategoryStorage
	itemRepo     storage.ItemStorage
}

func NewCatalogService(log *slog.Logger, categoryRepo storage.CategoryStorage, itemRepo storage.ItemStorage) CatalogService {
	return &catalogService{
		log:          log,
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"

	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list categories: %w", op, err)
	}
	return categories, nil
}

func (s *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	const op = "service.CatalogService.GetCategoryBySlug"

	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, storage.ErrCategoryNotFound) {
			s.log.Error("failed to get category", slog.String("op", op), slog.String("slug", slug), slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to get category: %w", op, err)
	}
	return category, nil
}

func (s *catalogService) ListItems(ctx context.Context, categorySlug string) ([]*models.Item, error) {
	const op = "service.CatalogService.ListItems"
	logger := s.log.With(slog.String("op", op), slog.String("categorySlug", categorySlug))

	if categorySlug == "" {
		items, err := s.itemRepo.GetItems(ctx)
		if err != nil {
			logger.Error("failed to list items", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to list items: %w", op, err)
		}
		return items, nil
	}

	category, err := s.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			// неизвестная категория — просто пустой список
			return []*models.Item{}, nil
		}
		logger.Error("failed to get category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get category: %w", op, err)
	}

	items, err := s.itemRepo.GetItemsByCategory(ctx, category.ID)
	if err != nil {
		logger.Error("failed to list items by category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list items by category: %w", op, err)
	}
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	const op = "service.CatalogService.GetItem"

	item, err := s.itemRepo.GetItemByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrItemNotFound) {
			s.log.Error("failed to get item", slog.String("op", op), slog.Int64("itemID", id), slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to get item: %w", op, err)
	}
	return item, nil
}

func (s *catalogService) CreateItem(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	const op = "service.CatalogService.CreateItem"
	logger := s.log.With(slog.String("op", op), slog.String("name", input.Name))

	if err := validate.Struct(input); err != nil {
		logger.Warn("invalid create item input", slog.Any("error", err))
		return nil, NewValidationError("Missing required fields")
	}

	// новый товар скрыт из магазина, пока админ явно не включит его
	item := &models.Item{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsInShop:    false,
	}

	created, err := s.itemRepo.CreateItem(ctx, item)
	if err != nil {
		logger.Error("failed to create item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create item: %w", op, err)
	}

	logger.Info("item created", slog.Int64("itemID", created.ID))
	return created, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteItem"

	if err := s.itemRepo.DeleteItem(ctx, id); err != nil {
		s.log.Error("failed to delete item", slog.String("op", op), slog.Int64("itemID", id), slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete item: %w", op, err)
	}

	s.log.Info("item deleted", slog.String("op", op), slog.Int64("itemID", id))
	return nil
}

func (s *catalogService) SetItemVisibility(ctx context.Context, id int64, isInShop bool) (*models.Item, error) {
	const op = "service.CatalogService.SetItemVisibility"
	logger := s.log.With(slog.String("op", op), slog.Int64("itemID", id), slog.Bool("isInShop", isInShop))

	item, err := s.itemRepo.SetItemVisibility(ctx, id, isInShop)
	if err != nil {
		if !errors.Is(err, storage.ErrItemNotFound) {
			logger.Error("failed to update item visibility", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to update item visibility: %w", op, err)
	}

	logger.Info("item visibility updated")
	return item, nil
}
