package repository

import (
	"context"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// CreateOrder фиксирует завершенный заказ внешнего магазина и возвращает его ID.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (user_username, external_order_id, order_number, items_summary, amount, currency)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		order.UserUsername, order.ExternalOrderID, order.OrderNumber,
		order.ItemsSummary, order.Amount, order.Currency).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListOrdersByUser возвращает заказы пользователя по убыванию даты создания.
func (s *Storage) ListOrdersByUser(ctx context.Context, username string, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListOrdersByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_username, external_order_id, order_number, items_summary, amount, currency, created_at
			  FROM orders
			  WHERE user_username = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserUsername, &o.ExternalOrderID, &o.OrderNumber,
			&o.ItemsSummary, &o.Amount, &o.Currency, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
