package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pingscomm/shop-backend/internal/app/handlers"
	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/lib/pricing"
	"github.com/pingscomm/shop-backend/internal/service"
	"github.com/pingscomm/shop-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Заглушки сервисов: тестам хэндлеров не нужны репозитории,
// только управляемые ответы сервисного слоя.

type stubCartService struct {
	getCart        func(ctx context.Context, sessionID string) ([]*models.CartEntry, error)
	addToCart      func(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error)
	updateCartItem func(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error)
	removeFromCart func(ctx context.Context, cartItemID int64) error
	totals         func(ctx context.Context, sessionID string) (pricing.Totals, error)
}

var _ service.CartService = (*stubCartService)(nil)

func (s *stubCartService) GetCart(ctx context.Context, sessionID string) ([]*models.CartEntry, error) {
	return s.getCart(ctx, sessionID)
}

func (s *stubCartService) AddToCart(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error) {
	return s.addToCart(ctx, sessionID, itemID, quantity)
}

func (s *stubCartService) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error) {
	return s.updateCartItem(ctx, cartItemID, quantity)
}

func (s *stubCartService) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	return s.removeFromCart(ctx, cartItemID)
}

func (s *stubCartService) ClearCart(ctx context.Context, sessionID string) error {
	return nil
}

func (s *stubCartService) Totals(ctx context.Context, sessionID string) (pricing.Totals, error) {
	return s.totals(ctx, sessionID)
}

type stubCatalogService struct {
	listCategories    func(ctx context.Context) ([]*models.Category, error)
	getCategoryBySlug func(ctx context.Context, slug string) (*models.Category, error)
	listItems         func(ctx context.Context, categorySlug string) ([]*models.Item, error)
	getItem           func(ctx context.Context, id int64) (*models.Item, error)
	createItem        func(ctx context.Context, input service.CreateItemInput) (*models.Item, error)
	deleteItem        func(ctx context.Context, id int64) error
	setItemVisibility func(ctx context.Context, id int64, isInShop bool) (*models.Item, error)
}

var _ service.CatalogService = (*stubCatalogService)(nil)

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.listCategories(ctx)
}

func (s *stubCatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getCategoryBySlug(ctx, slug)
}

func (s *stubCatalogService) ListItems(ctx context.Context, categorySlug string) ([]*models.Item, error) {
	return s.listItems(ctx, categorySlug)
}

func (s *stubCatalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return s.getItem(ctx, id)
}

func (s *stubCatalogService) CreateItem(ctx context.Context, input service.CreateItemInput) (*models.Item, error) {
	return s.createItem(ctx, input)
}

func (s *stubCatalogService) DeleteItem(ctx context.Context, id int64) error {
	return s.deleteItem(ctx, id)
}

func (s *stubCatalogService) SetItemVisibility(ctx context.Context, id int64, isInShop bool) (*models.Item, error) {
	return s.setItemVisibility(ctx, id, isInShop)
}

type stubOrderService struct {
	createOrder func(ctx context.Context, input service.CreateOrderInput) (*models.Order, error)
}

var _ service.OrderService = (*stubOrderService)(nil)

func (s *stubOrderService) CreateOrder(ctx context.Context, input service.CreateOrderInput) (*models.Order, error) {
	return s.createOrder(ctx, input)
}

type stubMessageService struct {
	createMessage func(ctx context.Context, input service.CreateMessageInput) (*models.Message, error)
}

var _ service.MessageService = (*stubMessageService)(nil)

func (s *stubMessageService) CreateMessage(ctx context.Context, input service.CreateMessageInput) (*models.Message, error) {
	return s.createMessage(ctx, input)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func cartRouter(svc service.CartService) *chi.Mux {
	log := testLogger()
	router := chi.NewRouter()
	router.Get("/api/cart/{sessionID}", handlers.GetCartHandler(log, svc))
	router.Get("/api/cart/{sessionID}/totals", handlers.CartTotalsHandler(log, svc))
	router.Post("/api/cart", handlers.AddToCartHandler(log, svc))
	router.Patch("/api/cart/{id}", handlers.UpdateCartItemHandler(log, svc))
	router.Delete("/api/cart/{id}", handlers.RemoveFromCartHandler(log, svc))
	return router
}

func catalogRouter(svc service.CatalogService) *chi.Mux {
	log := testLogger()
	router := chi.NewRouter()
	router.Get("/api/categories", handlers.ListCategoriesHandler(log, svc))
	router.Get("/api/categories/{slug}", handlers.GetCategoryHandler(log, svc))
	router.Get("/api/items", handlers.ListItemsHandler(log, svc))
	router.Get("/api/items/{id}", handlers.GetItemHandler(log, svc))
	router.Patch("/api/items/{id}", handlers.UpdateItemVisibilityHandler(log, svc))
	router.Post("/api/services", handlers.CreateServiceHandler(log, svc))
	router.Delete("/api/services/{id}", handlers.DeleteServiceHandler(log, svc))
	return router
}

func doRequest(router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Message
}

func TestAddToCartHandler_Created(t *testing.T) {
	svc := &stubCartService{
		addToCart: func(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error) {
			return &models.CartItem{ID: 7, SessionID: sessionID, ItemID: itemID, Quantity: quantity}, nil
		},
	}

	rec := doRequest(cartRouter(svc), http.MethodPost, "/api/cart",
		[]byte(`{"sessionId":"session-1","itemId":3,"quantity":2}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var cartItem models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartItem))
	assert.Equal(t, int64(7), cartItem.ID)
	assert.Equal(t, 2, cartItem.Quantity)
}

func TestAddToCartHandler_DefaultsQuantityToOne(t *testing.T) {
	var gotQuantity int
	svc := &stubCartService{
		addToCart: func(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error) {
			gotQuantity = quantity
			return &models.CartItem{ID: 1, SessionID: sessionID, ItemID: itemID, Quantity: quantity}, nil
		},
	}

	rec := doRequest(cartRouter(svc), http.MethodPost, "/api/cart",
		[]byte(`{"sessionId":"session-1","itemId":3}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, gotQuantity)
}

func TestAddToCartHandler_BadJSON(t *testing.T) {
	svc := &stubCartService{}

	rec := doRequest(cartRouter(svc), http.MethodPost, "/api/cart", []byte(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartHandler_ValidationError(t *testing.T) {
	svc := &stubCartService{
		addToCart: func(ctx context.Context, sessionID string, itemID int64, quantity int) (*models.CartItem, error) {
			return nil, service.NewValidationError("Session id is required")
		},
	}

	rec := doRequest(cartRouter(svc), http.MethodPost, "/api/cart",
		[]byte(`{"itemId":3,"quantity":1}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Session id is required", decodeMessage(t, rec))
}

func TestUpdateCartItemHandler_NotFound(t *testing.T) {
	svc := &stubCartService{
		updateCartItem: func(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error) {
			return nil, storage.ErrCartItemNotFound
		},
	}
	router := cartRouter(svc)

	rec := doRequest(router, http.MethodPatch, "/api/cart/42", []byte(`{"quantity":2}`))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart item not found", decodeMessage(t, rec))

	// нечисловой id тоже отдаёт 404, до сервиса запрос не доходит
	rec = doRequest(router, http.MethodPatch, "/api/cart/abc", []byte(`{"quantity":2}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFromCartHandler_NoContent(t *testing.T) {
	svc := &stubCartService{
		removeFromCart: func(ctx context.Context, cartItemID int64) error {
			return nil
		},
	}
	router := cartRouter(svc)

	rec := doRequest(router, http.MethodDelete, "/api/cart/42", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// идемпотентность: нечисловой id — тоже 204
	rec = doRequest(router, http.MethodDelete, "/api/cart/abc", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCartTotalsHandler_OK(t *testing.T) {
	svc := &stubCartService{
		totals: func(ctx context.Context, sessionID string) (pricing.Totals, error) {
			return pricing.Calculate([]pricing.Line{{Price: "$20", Quantity: 2}}), nil
		},
	}

	rec := doRequest(cartRouter(svc), http.MethodGet, "/api/cart/session-1/totals", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var amounts pricing.Amounts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &amounts))
	assert.Equal(t, "40.00", amounts.Subtotal)
	assert.Equal(t, "4.00", amounts.Tax)
	assert.Equal(t, "5.00", amounts.Shipping)
	assert.Equal(t, "2.50", amounts.Handling)
	assert.Equal(t, "51.50", amounts.Total)
}

func TestGetCartHandler_OK(t *testing.T) {
	svc := &stubCartService{
		getCart: func(ctx context.Context, sessionID string) ([]*models.CartEntry, error) {
			return []*models.CartEntry{
				{
					CartItem: models.CartItem{ID: 1, SessionID: sessionID, ItemID: 2, Quantity: 3},
					Item:     &models.Item{ID: 2, Name: "Vinyl Banner"},
				},
			}, nil
		},
	}

	rec := doRequest(cartRouter(svc), http.MethodGet, "/api/cart/session-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "session-1", entries[0]["sessionId"])
}

func TestListCategoriesHandler_EmptyListNotNull(t *testing.T) {
	svc := &stubCatalogService{
		listCategories: func(ctx context.Context) ([]*models.Category, error) {
			return nil, nil
		},
	}

	rec := doRequest(catalogRouter(svc), http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetCategoryHandler_NotFound(t *testing.T) {
	svc := &stubCatalogService{
		getCategoryBySlug: func(ctx context.Context, slug string) (*models.Category, error) {
			return nil, storage.ErrCategoryNotFound
		},
	}

	rec := doRequest(catalogRouter(svc), http.MethodGet, "/api/categories/missing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decodeMessage(t, rec))
}

func TestGetItemHandler_NonNumericID(t *testing.T) {
	svc := &stubCatalogService{}

	rec := doRequest(catalogRouter(svc), http.MethodGet, "/api/items/not-a-number", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item not found", decodeMessage(t, rec))
}

func TestUpdateItemVisibilityHandler_RequiresBoolean(t *testing.T) {
	svc := &stubCatalogService{}
	router := catalogRouter(svc)

	for _, body := range []string{`{}`, `{"isInShop":"yes"}`, `not json`} {
		rec := doRequest(router, http.MethodPatch, "/api/items/1", []byte(body))
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "isInShop must be a boolean", decodeMessage(t, rec))
	}
}

func TestUpdateItemVisibilityHandler_OK(t *testing.T) {
	svc := &stubCatalogService{
		setItemVisibility: func(ctx context.Context, id int64, isInShop bool) (*models.Item, error) {
			return &models.Item{ID: id, Name: "Vinyl Banner", IsInShop: isInShop}, nil
		},
	}

	rec := doRequest(catalogRouter(svc), http.MethodPatch, "/api/items/5", []byte(`{"isInShop":true}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var item models.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.True(t, item.IsInShop)
}

func TestCreateServiceHandler(t *testing.T) {
	svc := &stubCatalogService{
		createItem: func(ctx context.Context, input service.CreateItemInput) (*models.Item, error) {
			return &models.Item{ID: 9, Name: input.Name, IsInShop: false}, nil
		},
	}
	router := catalogRouter(svc)

	rec := doRequest(router, http.MethodPost, "/api/services",
		[]byte(`{"name":"Foam Board","categoryId":1,"description":"d","imageUrl":"/i.jpg"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/services", []byte(`{broken`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", decodeMessage(t, rec))
}

func TestDeleteServiceHandler(t *testing.T) {
	svc := &stubCatalogService{
		deleteItem: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	router := catalogRouter(svc)

	rec := doRequest(router, http.MethodDelete, "/api/services/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service deleted", decodeMessage(t, rec))

	// нечисловой id не считается ошибкой
	rec = doRequest(router, http.MethodDelete, "/api/services/abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service deleted", decodeMessage(t, rec))
}

func TestCreateOrderHandler(t *testing.T) {
	log := testLogger()
	svc := &stubOrderService{
		createOrder: func(ctx context.Context, input service.CreateOrderInput) (*models.Order, error) {
			return &models.Order{ID: 1, SessionID: input.SessionID, Status: models.OrderStatusPending}, nil
		},
	}
	router := chi.NewRouter()
	router.Post("/api/orders", handlers.CreateOrderHandler(log, svc))

	rec := doRequest(router, http.MethodPost, "/api/orders",
		[]byte(`{"sessionId":"session-1","customerName":"John","customerEmail":"j@e.com","customerPhone":"5551234567","address":"a","totalAmount":"$1.00","items":"[]","createdAt":"now"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestCreateOrderHandler_ValidationError(t *testing.T) {
	log := testLogger()
	svc := &stubOrderService{
		createOrder: func(ctx context.Context, input service.CreateOrderInput) (*models.Order, error) {
			return nil, service.NewValidationError("Phone number must be at least 10 digits")
		},
	}
	router := chi.NewRouter()
	router.Post("/api/orders", handlers.CreateOrderHandler(log, svc))

	rec := doRequest(router, http.MethodPost, "/api/orders", []byte(`{"sessionId":"s"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number must be at least 10 digits", decodeMessage(t, rec))
}

func TestCreateMessageHandler(t *testing.T) {
	log := testLogger()
	svc := &stubMessageService{
		createMessage: func(ctx context.Context, input service.CreateMessageInput) (*models.Message, error) {
			return &models.Message{ID: 1, Name: input.Name}, nil
		},
	}
	router := chi.NewRouter()
	router.Post("/api/messages", handlers.CreateMessageHandler(log, svc))

	rec := doRequest(router, http.MethodPost, "/api/messages",
		[]byte(`{"name":"Jane","email":"j@e.com","subject":"s","message":"m"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var message models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &message))
	assert.Equal(t, int64(1), message.ID)
}
