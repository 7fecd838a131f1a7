package paymentprovider

// CreateOrderRequest — тело запроса на создание заказа в Razorpay.
// Сумма задается в минимальных единицах валюты (пайсах).
type CreateOrderRequest struct {
	Amount   int            `json:"amount"`
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt"`
	Notes    map[string]any `json:"notes,omitempty"`
}

// CreateOrderResponse — ответ Razorpay на создание заказа.
type CreateOrderResponse struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}
