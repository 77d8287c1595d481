package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/service"
)

// ListCategoriesHandler обрабатывает запрос GET /api/categories
func ListCategoriesHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := catalogService.ListCategories(r.Context())
		if err != nil {
			handleServiceError(logger, w, err, "Failed to list categories")
			return
		}
		if categories == nil {
			categories = []*models.Category{}
		}
		writeJSON(logger, w, http.StatusOK, categories)
	}
}

// GetCategoryHandler обрабатывает запрос GET /api/categories/{slug}
func GetCategoryHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCategoryHandler"
		logger := log.With(slog.String("op", op))

		slug := chi.URLParam(r, "slug")
		category, err := catalogService.GetCategoryBySlug(r.Context(), slug)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to get category")
			return
		}
		writeJSON(logger, w, http.StatusOK, category)
	}
}

// ListItemsHandler обрабатывает запрос GET /api/items?categorySlug=
func ListItemsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListItemsHandler"
		logger := log.With(slog.String("op", op))

		categorySlug := r.URL.Query().Get("categorySlug")
		items, err := catalogService.ListItems(r.Context(), categorySlug)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to list items")
			return
		}
		if items == nil {
			items = []*models.Item{}
		}
		writeJSON(logger, w, http.StatusOK, items)
	}
}

// GetItemHandler обрабатывает запрос GET /api/items/{id}
func GetItemHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			// нечисловой id товара не существует
			writeMessage(logger, w, http.StatusNotFound, "Item not found")
			return
		}

		item, err := catalogService.GetItem(r.Context(), id)
		if err != nil {
			handleServiceError(logger, w, err, "Failed to get item")
			return
		}
		writeJSON(logger, w, http.StatusOK, item)
	}
}
