package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pingscomm/shop-backend/internal/app"
	"github.com/pingscomm/shop-backend/internal/app/handlers"
	"github.com/pingscomm/shop-backend/internal/config"
	"github.com/pingscomm/shop-backend/internal/lib/cartevents"
	"github.com/pingscomm/shop-backend/internal/lib/logger"
	"github.com/pingscomm/shop-backend/internal/lib/logger/handlers/urllog"
	"github.com/pingscomm/shop-backend/internal/lib/mailer"
	"github.com/pingscomm/shop-backend/internal/service"
	"github.com/pingscomm/shop-backend/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	categoryRepo := storage.NewCategoryRepository(application.DB)
	itemRepo := storage.NewItemRepository(application.DB)
	messageRepo := storage.NewMessageRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)

	// уведомления и шина событий корзины
	notifier := mailer.New(application.Logger, cfg.SMTP)
	cartBus := cartevents.NewBus()

	catalogService := service.NewCatalogService(application.Logger, categoryRepo, itemRepo)
	cartService := service.NewCartService(application.Logger, cartRepo, itemRepo, cartBus)
	messageService := service.NewMessageService(application.Logger, messageRepo, notifier)
	orderService := service.NewOrderService(application.Logger, orderRepo, cartRepo, notifier, cartBus)

	// каталог
	router.Get("/api/categories", handlers.ListCategoriesHandler(application.Logger, catalogService))
	router.Get("/api/categories/{slug}", handlers.GetCategoryHandler(application.Logger, catalogService))
	router.Get("/api/items", handlers.ListItemsHandler(application.Logger, catalogService))
	router.Get("/api/items/{id}", handlers.GetItemHandler(application.Logger, catalogService))

	// админские операции над каталогом (намеренно без аутентификации)
	router.Patch("/api/items/{id}", handlers.UpdateItemVisibilityHandler(application.Logger, catalogService))
	router.Post("/api/services", handlers.CreateServiceHandler(application.Logger, catalogService))
	router.Delete("/api/services/{id}", handlers.DeleteServiceHandler(application.Logger, catalogService))

	// контактная форма
	router.Post("/api/messages", handlers.CreateMessageHandler(application.Logger, messageService))

	// корзина
	router.Get("/api/cart/{sessionID}", handlers.GetCartHandler(application.Logger, cartService))
	router.Get("/api/cart/{sessionID}/totals", handlers.CartTotalsHandler(application.Logger, cartService))
	router.Get("/api/cart/{sessionID}/events", handlers.CartEventsHandler(application.Logger, cartBus))
	router.Post("/api/cart", handlers.AddToCartHandler(application.Logger, cartService))
	router.Patch("/api/cart/{id}", handlers.UpdateCartItemHandler(application.Logger, cartService))
	router.Delete("/api/cart/{id}", handlers.RemoveFromCartHandler(application.Logger, cartService))

	// оформление заказа
	router.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
