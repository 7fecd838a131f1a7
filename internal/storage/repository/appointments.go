package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// CreateAppointment вставляет запись на консультацию и возвращает её ID.
func (s *Storage) CreateAppointment(ctx context.Context, appointment models.Appointment) (int, error) {
	const op = "storage.CreateAppointment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO appointments (user_username, expert_username, scheduled_at, notes, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		appointment.UserUsername, appointment.ExpertUsername, appointment.ScheduledAt,
		appointment.Notes, appointment.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetAppointment возвращает консультацию по её ID.
func (s *Storage) GetAppointment(ctx context.Context, id int) (*models.Appointment, error) {
	const op = "storage.GetAppointment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_username, expert_username, scheduled_at, notes, status, created_at
			  FROM appointments
			  WHERE id = $1`
	var a models.Appointment
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&a.ID, &a.UserUsername, &a.ExpertUsername, &a.ScheduledAt,
		&a.Notes, &a.Status, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// ListAppointmentsByUser возвращает консультации, созданные пользователем.
func (s *Storage) ListAppointmentsByUser(ctx context.Context, username string, limit, offset int) ([]*models.Appointment, error) {
	const op = "storage.ListAppointmentsByUser"
	query := `SELECT id, user_username, expert_username, scheduled_at, notes, status, created_at
			  FROM appointments
			  WHERE user_username = $1
			  ORDER BY scheduled_at
			  LIMIT $2 OFFSET $3`
	return s.listAppointments(ctx, op, query, username, limit, offset)
}

// ListAppointmentsByExpert возвращает консультации, назначенные эксперту.
func (s *Storage) ListAppointmentsByExpert(ctx context.Context, expertUsername string, limit, offset int) ([]*models.Appointment, error) {
	const op = "storage.ListAppointmentsByExpert"
	query := `SELECT id, user_username, expert_username, scheduled_at, notes, status, created_at
			  FROM appointments
			  WHERE expert_username = $1
			  ORDER BY scheduled_at
			  LIMIT $2 OFFSET $3`
	return s.listAppointments(ctx, op, query, expertUsername, limit, offset)
}

// ListAllAppointments возвращает все консультации с пагинацией.
func (s *Storage) ListAllAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error) {
	const op = "storage.ListAllAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_username, expert_username, scheduled_at, notes, status, created_at
			  FROM appointments
			  ORDER BY scheduled_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanAppointments(rows, op)
}

func (s *Storage) listAppointments(ctx context.Context, op, query, username string, limit, offset int) ([]*models.Appointment, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanAppointments(rows, op)
}

func scanAppointments(rows *sql.Rows, op string) ([]*models.Appointment, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.UserUsername, &a.ExpertUsername, &a.ScheduledAt,
			&a.Notes, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAppointmentStatus меняет статус консультации.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateAppointmentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE appointments SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindAppointmentsDueTomorrow находит запланированные на завтра консультации
// вместе с почтой пользователя для отправки напоминания.
func (s *Storage) FindAppointmentsDueTomorrow(ctx context.Context) ([]*models.AppointmentReminder, error) {
	const op = "storage.FindAppointmentsDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, a.user_username, a.expert_username, a.scheduled_at
			  FROM appointments a
			  JOIN users u ON u.username = a.user_username
			  WHERE a.status = 'scheduled'
			    AND a.scheduled_at::DATE = CURRENT_DATE + INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AppointmentReminder
	for rows.Next() {
		var r models.AppointmentReminder
		if err := rows.Scan(&r.Email, &r.Username, &r.ExpertUsername, &r.ScheduledAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
