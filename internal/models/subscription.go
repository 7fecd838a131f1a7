package models

import "time"

// Subscription — снимок биллинга, одна запись на пользователя.
// При продлении или апгрейде запись перезаписывается, история не ведется.
type Subscription struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"` // Владелец записи
	Plan      string    `json:"plan"`     // Тариф: basic, premium, specialized
	Status    string    `json:"status"`   // Статус: active или inactive
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	UpdatedAt time.Time `json:"updated_at"`
}
