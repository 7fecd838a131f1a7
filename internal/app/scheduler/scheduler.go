// Package scheduler собирает фоновое приложение напоминаний
// и деактивации просроченных подписок.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/matricare/matricare-backend/internal/config"
	librabbitmq "github.com/matricare/matricare-backend/internal/lib/rabbitmq"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
	services "github.com/matricare/matricare-backend/internal/services/scheduler"
	"github.com/matricare/matricare-backend/internal/storage/repository"
)

// App инкапсулирует зависимости планировщика.
type App struct {
	conn             *amqp.Connection
	ch               *amqp.Channel
	db               *repository.Storage
	schedulerService *services.SchedulerService
	logger           *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New подключает брокер и базу, собирает SchedulerService.
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

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		_ = conn.Close()
		return nil, err
	}

	publisher := librabbitmq.NewPublisher(ch)
	schedulerService := services.NewSchedulerService(db, publisher, logger)

	return &App{
		conn:             conn,
		ch:               ch,
		db:               db,
		schedulerService: schedulerService,
		logger:           logger,
	}, nil
}

// Run запускает циклы напоминаний и деактивации подписок
// и ждёт отмены контекста.
func (a *App) Run(ctx context.Context) error {
	go a.schedulerService.RunAppointmentReminders(ctx)
	go a.schedulerService.RunSubscriptionExpiry(ctx)

	<-ctx.Done()
	a.logger.Info("Scheduler shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	_ = a.db.DB.Close()

	return nil
}
