package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/lib/cartevents"
	"github.com/pingscomm/shop-backend/internal/lib/pricing"
	"github.com/pingscomm/shop-backend/internal/storage"
)

// CartService — операции над корзиной сессии. Ключевое правило —
// merge-on-add: повторное добавление того же товара увеличивает
// количество существующей строки, а не создаёт дубликат.
type CartService interface {
	// GetCart возвращает строки корзины вместе с актуальными данными
	// товаров; строки, чей товар удалён из каталога, опускаются.
	GetCart(ctx context.Context, sessionID string) ([]*models.CartEntry, error)
	// AddToCart добавляет товар в корзину, сливая количество с уже
	// существующей строкой той же пары (сессия, товар).
	AddToCart(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error)
	// UpdateCartItem выставляет абсолютное количество строки корзины.
	UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error)
	// RemoveFromCart удаляет строку корзины; идемпотентна.
	RemoveFromCart(ctx context.Context, cartItemID int64) error
	// ClearCart удаляет все строки корзины сессии.
	ClearCart(ctx context.Context, sessionID string) error
	// Totals считает итоги по актуальному содержимому корзины.
	Totals(ctx context.Context, sessionID string) (pricing.Totals, error)
}

type cartService struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
	itemRepo storage.ItemStorage
	events   *cartevents.Bus
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, itemRepo storage.ItemStorage, events *cartevents.Bus) CartService {
	return &cartService{
		log:      log,
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		events:   events,
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) ([]*models.CartEntry, error) {
	const op = "service.CartService.GetCart"
	logger := s.log.With(slog.String("op", op), slog.String("sessionID", sessionID))

	cartItems, err := s.cartRepo.GetCartItems(ctx, sessionID)
	if err != nil {
		logger.Error("failed to get cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart items: %w", op, err)
	}

	entries := make([]*models.CartEntry, 0, len(cartItems))
	for _, cartItem := range cartItems {
		item, err := s.itemRepo.GetItemByID(ctx, cartItem.ItemID)
		if err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				// товар удалён из каталога: строку нельзя ни оценить,
				// ни показать — опускаем её
				logger.Warn("cart item references missing item", slog.Int64("itemID", cartItem.ItemID))
				continue
			}
			logger.Error("failed to get item", slog.Int64("itemID", cartItem.ItemID), slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get item: %w", op, err)
		}
		entries = append(entries, &models.CartEntry{CartItem: *cartItem, Item: item})
	}
	return entries, nil
}

// AddToCart реализует merge-on-add. Известная гонка: два конкурентных
// добавления одной пары (сессия, товар) могут оба не увидеть строку и
// вставить две; мутации корзины — одиночные read-modify-write запросы,
// и таблица сознательно не несёт ограничения уникальности.
func (s *cartService) AddToCart(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.AddToCart"
	logger := s.log.With(slog.String("op", op), slog.String("sessionID", sessionID), slog.Int64("itemID", itemID))

	if sessionID == "" {
		return nil, NewValidationError("Session id is required")
	}
	if quantity < 1 {
		return nil, NewValidationError("Quantity must be at least 1")
	}

	existing, err := s.cartRepo.GetCartItemBySessionAndItem(ctx, sessionID, itemID)
	if err != nil && !errors.Is(err, storage.ErrCartItemNotFound) {
		logger.Error("failed to look up cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to look up cart item: %w", op, err)
	}

	var cartItem *models.CartItem
	if existing != nil {
		cartItem, err = s.cartRepo.SetCartItemQuantity(ctx, existing.ID, existing.Quantity+quantity)
		if err != nil {
			logger.Error("failed to merge cart item quantity", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to merge cart item quantity: %w", op, err)
		}
	} else {
		cartItem, err = s.cartRepo.AddCartItem(ctx, &models.CartItem{
			SessionID: sessionID,
			ItemID:    itemID,
			Quantity:  quantity,
		})
		if err != nil {
			logger.Error("failed to add cart item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to add cart item: %w", op, err)
		}
	}

	s.events.Publish(cartevents.Event{SessionID: sessionID, Op: cartevents.OpAdd})
	logger.Info("item added to cart", slog.Int("quantity", cartItem.Quantity))
	return cartItem, nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.UpdateCartItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("cartItemID", cartItemID))

	if quantity < 1 {
		return nil, NewValidationError("Quantity must be at least 1")
	}

	cartItem, err := s.cartRepo.SetCartItemQuantity(ctx, cartItemID, quantity)
	if err != nil {
		if !errors.Is(err, storage.ErrCartItemNotFound) {
			logger.Error("failed to update cart item", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to update cart item: %w", op, err)
	}

	s.events.Publish(cartevents.Event{SessionID: cartItem.SessionID, Op: cartevents.OpUpdate})
	logger.Info("cart item updated", slog.Int("quantity", quantity))
	return cartItem, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	const op = "service.CartService.RemoveFromCart"

	removed, err := s.cartRepo.RemoveCartItem(ctx, cartItemID)
	if err != nil {
		// идемпотентность: строки уже нет, удалять нечего и событие не нужно
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return nil
		}
		s.log.Error("failed to remove cart item", slog.String("op", op), slog.Int64("cartItemID", cartItemID), slog.Any("error", err))
		return fmt.Errorf("%s: failed to remove cart item: %w", op, err)
	}

	s.events.Publish(cartevents.Event{SessionID: removed.SessionID, Op: cartevents.OpRemove})
	return nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	const op = "service.CartService.ClearCart"

	if err := s.cartRepo.ClearCart(ctx, sessionID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.String("sessionID", sessionID), slog.Any("error", err))
		return fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	s.events.Publish(cartevents.Event{SessionID: sessionID, Op: cartevents.OpClear})
	return nil
}

func (s *cartService) Totals(ctx context.Context, sessionID string) (pricing.Totals, error) {
	const op = "service.CartService.Totals"

	entries, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return pricing.Totals{}, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]pricing.Line, 0, len(entries))
	for _, entry := range entries {
		price := ""
		if entry.Item.Price != nil {
			price = *entry.Item.Price
		}
		lines = append(lines, pricing.Line{Price: price, Quantity: entry.Quantity})
	}
	return pricing.Calculate(lines), nil
}
