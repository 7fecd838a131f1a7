// Package sender собирает приложение почтовых уведомлений,
// потребляющее очереди обменника notifications.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/matricare/matricare-backend/internal/config"
	"github.com/matricare/matricare-backend/internal/lib/smtp"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
	senderservice "github.com/matricare/matricare-backend/internal/services/sender"
)

// App инкапсулирует зависимости сервиса уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New подключает брокер и собирает SenderService поверх SMTP-транспорта.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очереди уведомлений и ждёт отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueuePayment, a.senderService.SendPaymentConfirmation)
	if err != nil {
		a.logger.Error("failed to start payment consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueReminder, a.senderService.SendAppointmentReminder)
	if err != nil {
		a.logger.Error("failed to start reminder consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueSupport, a.senderService.SendSupportReplyNotice)
	if err != nil {
		a.logger.Error("failed to start support consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
