package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/matricare/matricare-backend/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAppointmentsDueTomorrow(ctx context.Context) ([]*models.AppointmentReminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AppointmentReminder), args.Error(1)
}

func (m *MockRepository) ExpireLapsedSubscriptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runAppointmentReminderSweep(t *testing.T) {
	reminder := &models.AppointmentReminder{
		Email:          "priya@example.com",
		Username:       "priya",
		ExpertUsername: "dr-rao",
		ScheduledAt:    time.Now().Add(24 * time.Hour),
	}

	tests := []struct {
		name       string
		setupMocks func(*MockRepository, *MockPublisher)
	}{
		{
			name: "найдены завтрашние консультации",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				r.On("FindAppointmentsDueTomorrow", mock.Anything).Return([]*models.AppointmentReminder{reminder}, nil).Once()
				p.On("Publish", "reminder", reminder).Return(nil).Once()
			},
		},
		{
			name: "консультаций нет",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				r.On("FindAppointmentsDueTomorrow", mock.Anything).Return([]*models.AppointmentReminder{}, nil).Once()
			},
		},
		{
			name: "ошибка репозитория только логируется",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				r.On("FindAppointmentsDueTomorrow", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
		},
		{
			name: "ошибка публикации только логируется",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				r.On("FindAppointmentsDueTomorrow", mock.Anything).Return([]*models.AppointmentReminder{reminder}, nil).Once()
				p.On("Publish", "reminder", reminder).Return(errors.New("amqp error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			pub := new(MockPublisher)
			tt.setupMocks(repo, pub)

			service := NewSchedulerService(repo, pub, newNoopLogger())
			service.runAppointmentReminderSweep(context.Background())

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_runSubscriptionExpirySweep(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "истекшие подписки деактивированы",
			setupMocks: func(r *MockRepository) {
				r.On("ExpireLapsedSubscriptions", mock.Anything).Return(3, nil).Once()
			},
		},
		{
			name: "истекших подписок нет",
			setupMocks: func(r *MockRepository) {
				r.On("ExpireLapsedSubscriptions", mock.Anything).Return(0, nil).Once()
			},
		},
		{
			name: "ошибка репозитория только логируется",
			setupMocks: func(r *MockRepository) {
				r.On("ExpireLapsedSubscriptions", mock.Anything).Return(0, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			service := NewSchedulerService(repo, new(MockPublisher), newNoopLogger())
			service.runSubscriptionExpirySweep(context.Background())

			repo.AssertExpectations(t)
		})
	}
}
