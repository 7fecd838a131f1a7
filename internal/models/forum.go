package models

import "time"

// ForumPost — публикация пользователя в сообществе.
// Скрытые модерацией публикации видны только администратору.
type ForumPost struct {
	ID             int
	AuthorUsername string
	Title          string
	Content        string
	Category       string // При создании без категории — "General"
	Hidden         bool   // Флаг модерации
	CreatedAt      time.Time
}

// ForumComment — комментарий к публикации.
type ForumComment struct {
	ID             int
	PostID         int
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}

// DummyForumPost используется для приёма данных публикации из JSON-запроса.
type DummyForumPost struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
}

// DummyForumComment используется для приёма данных комментария из JSON-запроса.
type DummyForumComment struct {
	Content string `json:"content" validate:"required"`
}
