// Package services содержит фоновые задачи планировщика: напоминания
// о консультациях и деактивация истекших подписок.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
)

// SchedulerRepository объединяет выборки планировщика.
type SchedulerRepository interface {
	FindAppointmentsDueTomorrow(ctx context.Context) ([]*models.AppointmentReminder, error)
	ExpireLapsedSubscriptions(ctx context.Context) (int, error)
}

// Publisher публикует события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SchedulerService запускает периодические задачи платформы.
type SchedulerService struct {
	repo      SchedulerRepository
	publisher Publisher
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SchedulerRepository, publisher Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// RunAppointmentReminders раз в сутки ставит в очередь напоминания
// о завтрашних консультациях.
func (s *SchedulerService) RunAppointmentReminders(ctx context.Context) {
	s.runAppointmentReminderSweep(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runAppointmentReminderSweep(ctx)
		}
	}
}

func (s *SchedulerService) runAppointmentReminderSweep(ctx context.Context) {
	s.log.Info("starting sweep for appointments due tomorrow")
	reminders, err := s.repo.FindAppointmentsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find appointments due tomorrow", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no appointments due tomorrow")
		return
	}
	s.log.Info("found appointments due tomorrow", "count", len(reminders))
	for _, reminder := range reminders {
		if err := s.publisher.Publish(rabbitmq.RoutingKeyReminder, reminder); err != nil {
			s.log.Error("failed to publish appointment reminder", sl.Err(err))
		}
	}
}

// RunSubscriptionExpiry каждые 12 часов переводит истекшие подписки
// в статус expired.
func (s *SchedulerService) RunSubscriptionExpiry(ctx context.Context) {
	s.runSubscriptionExpirySweep(ctx)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSubscriptionExpirySweep(ctx)
		}
	}
}

func (s *SchedulerService) runSubscriptionExpirySweep(ctx context.Context) {
	s.log.Info("starting sweep for lapsed subscriptions")
	expired, err := s.repo.ExpireLapsedSubscriptions(ctx)
	if err != nil {
		s.log.Error("failed to expire lapsed subscriptions", sl.Err(err))
		return
	}
	if expired == 0 {
		s.log.Info("no lapsed subscriptions found")
		return
	}
	s.log.Info("expired lapsed subscriptions", "count", expired)
}
