package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/pingscomm/shop-backend/internal/config"
)

// App держит разделяемые зависимости процесса: конфигурацию, логгер и
// подключение к БД. Репозитории и сервисы собираются поверх него.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp открывает подключение к БД и проверяет его доступность
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}

// Close освобождает подключение к БД.
func (a *App) Close() error {
	return a.DB.Close()
}
