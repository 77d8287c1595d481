package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

// MessageStorage описывает методы для работы с сообщениями контактной формы.
type MessageStorage interface {
	// CreateMessage вставляет новое сообщение и возвращает его с проставленным id.
	CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error)
}

// messageRepository — конкретная реализация MessageStorage.
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository создаёт новый репозиторий сообщений.
func NewMessageRepository(db *sql.DB) MessageStorage {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO messages (name, email, subject, message) VALUES ($1, $2, $3, $4) RETURNING id",
		message.Name, message.Email, message.Subject, message.Message,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	message.ID = id
	return message, nil
}
