// Package models содержит доменные структуры платформы: пользователей,
// подписки, платежи, записи форума, консультации и обращения в поддержку.
package models

import "time"

// Роли пользователей (закрытое множество).
const (
	RoleUser   = "user"
	RoleExpert = "expert"
	RoleAdmin  = "admin"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID                string     // Уникальный идентификатор пользователя
	Email              string     // Электронная почта
	Username           string     // Имя пользователя (уникальное)
	PasswordHash       string     // Хэш пароля пользователя
	Role               string     // Роль: user, expert или admin
	LifeStage          string     // Этап: pregnancy, postpartum, childhood
	DietType           string     // Тип питания: vegetarian, non-vegetarian, keto, vegan
	SubscriptionPlan   string     // Тариф подписки: basic, premium, specialized
	SubscriptionStatus string     // Статус подписки: active или inactive
	SubscriptionExpiry *time.Time // Дата окончания оплаченной подписки
	CreatedAt          time.Time
}

// PublicProfile — представление пользователя для ответов API.
// Хэш пароля и служебные поля наружу не отдаются.
type PublicProfile struct {
	Email              string `json:"email"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	LifeStage          string `json:"life_stage,omitempty"`
	DietType           string `json:"diet_type,omitempty"`
	SubscriptionPlan   string `json:"subscription_plan"`
	SubscriptionStatus string `json:"subscription_status"`
}

// Public возвращает безопасное для клиента представление пользователя.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		Email:              u.Email,
		Username:           u.Username,
		Role:               u.Role,
		LifeStage:          u.LifeStage,
		DietType:           u.DietType,
		SubscriptionPlan:   u.SubscriptionPlan,
		SubscriptionStatus: u.SubscriptionStatus,
	}
}

// ProfileUpdate используется для приёма изменений профиля из JSON-запроса.
type ProfileUpdate struct {
	Email     string `json:"email" validate:"omitempty,email"`
	LifeStage string `json:"life_stage" validate:"omitempty,oneof=pregnancy postpartum childhood"`
	DietType  string `json:"diet_type" validate:"omitempty"`
}
