package models

import "time"

// Статусы консультации (закрытое множество).
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment — запись пользователя на консультацию к эксперту.
type Appointment struct {
	ID             int
	UserUsername   string    // Кто записался
	ExpertUsername string    // К какому эксперту
	ScheduledAt    time.Time // Дата и время консультации
	Notes          string    // Свободный текст с вопросом
	Status         string    // scheduled, completed или cancelled
	CreatedAt      time.Time
}

// DummyAppointment используется для приёма данных записи из JSON-запроса.
// Дата приходит строкой и парсится вручную.
type DummyAppointment struct {
	ExpertUsername string `json:"expert_username" validate:"required"`
	ScheduledAt    string `json:"scheduled_at" validate:"required"` // RFC3339
	Notes          string `json:"notes,omitempty"`
}

// AppointmentReminder — событие для очереди напоминаний.
type AppointmentReminder struct {
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	ExpertUsername string    `json:"expert_username"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}
