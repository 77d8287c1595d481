// Package mailer отправляет уведомления магазина по SMTP.
// Доставка всегда best-effort: вызывающая сторона логирует ошибку и
// продолжает работу, заказ от исхода доставки не зависит.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/pingscomm/shop-backend/internal/config"
	"github.com/pingscomm/shop-backend/internal/domain/models"
)

type Mailer struct {
	log *slog.Logger
	cfg config.SMTPConfig
}

// New создаёт мейлер поверх SMTP-настроек. При cfg.Enabled=false
// письма не отправляются, а пишутся в лог — режим симуляции для
// локальной разработки.
func New(log *slog.Logger, cfg config.SMTPConfig) *Mailer {
	return &Mailer{log: log, cfg: cfg}
}

// OrderReceived уведомляет оператора магазина о новом заказе.
func (m *Mailer) OrderReceived(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	subject := fmt.Sprintf("New Order: #%d from %s", order.ID, order.CustomerName)
	return m.send(ctx, m.cfg.AdminEmail, subject, orderReceivedHTML(order, lines))
}

// OrderConfirmation отправляет клиенту подтверждение заказа.
func (m *Mailer) OrderConfirmation(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	subject := fmt.Sprintf("Order Confirmation: #%d", order.ID)
	return m.send(ctx, order.CustomerEmail, subject, orderConfirmationHTML(order, lines))
}

// ContactMessage пересылает оператору сообщение из контактной формы.
func (m *Mailer) ContactMessage(ctx context.Context, message *models.Message) error {
	subject := fmt.Sprintf("New Message from %s: %s", message.Name, message.Subject)
	return m.send(ctx, m.cfg.AdminEmail, subject, contactMessageHTML(message))
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.cfg.Enabled {
		m.log.Info("email simulation",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
