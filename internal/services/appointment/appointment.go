// Package appointment содержит бизнес-логику записи на консультации к экспертам.
package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/matricare/matricare-backend/internal/models"
)

var (
	// ErrPastDate возвращается при попытке записаться на прошедшее время.
	ErrPastDate = errors.New("scheduled time must be in the future")

	// ErrUnknownStatus возвращается для статуса вне закрытого множества.
	ErrUnknownStatus = errors.New("unknown appointment status")

	// ErrAlreadyClosed возвращается при смене статуса завершённой
	// или отменённой консультации.
	ErrAlreadyClosed = errors.New("appointment already closed")

	// ErrNotFound возвращается, когда консультация не существует.
	ErrNotFound = errors.New("appointment not found")

	// ErrNotAssigned возвращается, когда эксперт меняет статус
	// консультации, назначенной другому эксперту.
	ErrNotAssigned = errors.New("appointment assigned to another expert")
)

// AppointmentRepository описывает контракт хранилища консультаций.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment models.Appointment) (int, error)
	GetAppointment(ctx context.Context, id int) (*models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, username string, limit, offset int) ([]*models.Appointment, error)
	ListAppointmentsByExpert(ctx context.Context, expertUsername string, limit, offset int) ([]*models.Appointment, error)
	ListAllAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int, status string) (int, error)
}

// AppointmentService реализует операции с консультациями.
type AppointmentService struct {
	repo AppointmentRepository
}

// New создает новый экземпляр AppointmentService.
func New(repo AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Create записывает пользователя на консультацию в статусе scheduled.
func (s *AppointmentService) Create(ctx context.Context, userUsername, expertUsername string, scheduledAt time.Time, notes string) (int, error) {
	if !scheduledAt.After(time.Now()) {
		return 0, ErrPastDate
	}
	return s.repo.CreateAppointment(ctx, models.Appointment{
		UserUsername:   userUsername,
		ExpertUsername: expertUsername,
		ScheduledAt:    scheduledAt,
		Notes:          notes,
		Status:         models.AppointmentScheduled,
	})
}

// ListForRole возвращает консультации в зависимости от роли запрашивающего:
// пользователь видит свои записи, эксперт — назначенные ему, админ — все.
func (s *AppointmentService) ListForRole(ctx context.Context, username, role string, limit, offset int) ([]*models.Appointment, error) {
	switch role {
	case models.RoleExpert:
		return s.repo.ListAppointmentsByExpert(ctx, username, limit, offset)
	case models.RoleAdmin:
		return s.repo.ListAllAppointments(ctx, limit, offset)
	default:
		return s.repo.ListAppointmentsByUser(ctx, username, limit, offset)
	}
}

// UpdateStatus переводит консультацию в новый статус.
// Завершённые и отменённые консультации менять нельзя; эксперт может
// менять только назначенные ему записи, админ — любые.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int, status, callerUsername, callerRole string) error {
	switch status {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		return ErrUnknownStatus
	}

	appointment, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if callerRole == models.RoleExpert && appointment.ExpertUsername != callerUsername {
		return ErrNotAssigned
	}
	if appointment.Status != models.AppointmentScheduled {
		return ErrAlreadyClosed
	}

	affected, err := s.repo.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
