package models

import "time"

// Order — локальная запись о завершенном заказе во внешнем магазине.
// Каталог и корзина полностью делегированы внешнему сервису,
// здесь фиксируется только факт успешного чекаута.
type Order struct {
	ID              int
	UserUsername    string
	ExternalOrderID string // Идентификатор заказа во внешнем сервисе
	OrderNumber     string // Внутренний номер заказа
	ItemsSummary    string // Краткое описание позиций
	Amount          int    // Сумма в минимальных единицах валюты
	Currency        string
	CreatedAt       time.Time
}

// DummyOrder используется для приёма данных заказа из JSON-запроса.
type DummyOrder struct {
	ExternalOrderID string `json:"external_order_id" validate:"required"`
	ItemsSummary    string `json:"items_summary" validate:"required"`
	Amount          int    `json:"amount" validate:"required,gt=0"`
	Currency        string `json:"currency,omitempty"`
}
