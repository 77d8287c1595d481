package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pingscomm/shop-backend/internal/domain/models"
	"github.com/pingscomm/shop-backend/internal/storage"
)

// MessageService — приём сообщений контактной формы.
type MessageService interface {
	// CreateMessage сохраняет сообщение и best-effort уведомляет оператора.
	CreateMessage(ctx context.Context, input CreateMessageInput) (*models.Message, error)
}

// CreateMessageInput — входные данные контактной формы.
type CreateMessageInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

var messageFieldMessages = map[string]string{
	"Name":    "Name is required",
	"Email":   "Email is required",
	"Subject": "Subject is required",
	"Message": "Message is required",
}

type messageService struct {
	log         *slog.Logger
	messageRepo storage.MessageStorage
	notifier    Notifier
}

func NewMessageService(log *slog.Logger, messageRepo storage.MessageStorage, notifier Notifier) MessageService {
	return &messageService{
		log:         log,
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

func (s *messageService) CreateMessage(ctx context.Context, input CreateMessageInput) (*models.Message, error) {
	const op = "service.MessageService.CreateMessage"
	logger := s.log.With(slog.String("op", op), slog.String("email", input.Email))

	if err := validate.Struct(input); err != nil {
		logger.Warn("invalid message input", slog.Any("error", err))
		return nil, NewValidationError(firstValidationMessage(err, messageFieldMessages))
	}

	message, err := s.messageRepo.CreateMessage(ctx, &models.Message{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	})
	if err != nil {
		logger.Error("failed to create message", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create message: %w", op, err)
	}

	// уведомление оператора best-effort: ошибка доставки не влияет на ответ
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.ContactMessage(notifyCtx, message); err != nil {
		logger.Error("failed to send contact notification", slog.Any("error", err))
	}

	logger.Info("message created", slog.Int64("messageID", message.ID))
	return message, nil
}
