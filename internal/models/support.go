package models

import "time"

// Статусы обращения в поддержку.
const (
	SupportOpen    = "open"
	SupportReplied = "replied"
)

// SupportReply — единственный ответ эксперта на обращение.
type SupportReply struct {
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	RepliedAt      time.Time `json:"replied_at"`
}

// SupportMessage — обращение пользователя в поддержку с опциональным ответом.
// Статус переходит из open в replied один раз, при первом ответе.
type SupportMessage struct {
	ID             int
	AuthorUsername string
	Subject        string
	Content        string
	Status         string        // open или replied
	Reply          *SupportReply // nil, пока ответа нет
	CreatedAt      time.Time
}

// DummySupportMessage используется для приёма обращения из JSON-запроса.
type DummySupportMessage struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// SupportNotice — событие для очереди уведомлений об ответе поддержки.
type SupportNotice struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Subject  string `json:"subject"`
}
