// Package order фиксирует заказы внешнего магазина.
// Каталог и корзина живут во внешнем сервисе, здесь хранится только
// запись о факте успешного чекаута.
package order

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/matricare/matricare-backend/internal/models"
)

// ErrInvalidOrder возвращается для заказа без обязательных полей.
var ErrInvalidOrder = errors.New("invalid order payload")

const defaultCurrency = "INR"

// OrderRepository описывает контракт хранилища заказов.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (int, error)
	ListOrdersByUser(ctx context.Context, username string, limit, offset int) ([]*models.Order, error)
}

// OrderService реализует операции с заказами магазина.
type OrderService struct {
	repo OrderRepository
}

// New создает новый экземпляр OrderService.
func New(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Create записывает заказ и присваивает ему внутренний номер.
// Валюта по умолчанию — INR.
func (s *OrderService) Create(ctx context.Context, username string, dto models.DummyOrder) (int, string, error) {
	if strings.TrimSpace(dto.ExternalOrderID) == "" || strings.TrimSpace(dto.ItemsSummary) == "" || dto.Amount <= 0 {
		return 0, "", ErrInvalidOrder
	}
	currency := dto.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	orderNumber := "ord_" + uuid.NewString()
	id, err := s.repo.CreateOrder(ctx, models.Order{
		UserUsername:    username,
		ExternalOrderID: dto.ExternalOrderID,
		OrderNumber:     orderNumber,
		ItemsSummary:    dto.ItemsSummary,
		Amount:          dto.Amount,
		Currency:        currency,
	})
	if err != nil {
		return 0, "", err
	}
	return id, orderNumber, nil
}

// ListByUser возвращает историю заказов пользователя.
func (s *OrderService) ListByUser(ctx context.Context, username string, limit, offset int) ([]*models.Order, error) {
	return s.repo.ListOrdersByUser(ctx, username, limit, offset)
}
