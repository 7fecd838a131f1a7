package models

import "time"

// Статусы платежа (закрытое множество).
const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
)

// Payment — запись об одной попытке оплаты подписки.
// Создается при инициации чекаута, один раз помечается оплаченной
// при успешной проверке подписи и после этого не меняется.
type Payment struct {
	ID        int
	UserUID   string    // Плательщик
	OrderID   string    // Идентификатор заказа во внешнем шлюзе
	PaymentID string    // Идентификатор платежа во внешнем шлюзе (после оплаты)
	Receipt   string    // Внутренний номер чека
	Plan      string    // Оплачиваемый тариф
	Amount    int       // Сумма в минимальных единицах валюты (пайсах)
	Currency  string    // Валюта платежа
	Status    string    // created или paid
	CreatedAt time.Time
}

// PaymentNotice — событие для очереди подтверждений оплаты.
type PaymentNotice struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Plan     string `json:"plan"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}
