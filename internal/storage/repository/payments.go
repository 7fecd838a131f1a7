package repository

import (
	"context"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// CreatePayment вставляет запись о попытке оплаты и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, order_id, receipt, plan, amount, currency, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.OrderID, payment.Receipt, payment.Plan,
		payment.Amount, payment.Currency, payment.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByOrderID возвращает платеж по идентификатору заказа шлюза.
func (s *Storage) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, payment_id, receipt, plan, amount, currency, status, created_at
			  FROM payments
			  WHERE order_id = $1`
	var p models.Payment
	row := s.DB.QueryRowContext(ctx, query, orderID)
	if err := row.Scan(&p.ID, &p.UserUID, &p.OrderID, &p.PaymentID, &p.Receipt,
		&p.Plan, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// MarkPaymentPaid переводит платеж в статус paid и фиксирует идентификатор
// платежа во внешнем шлюзе. Возвращает количество изменённых строк.
func (s *Storage) MarkPaymentPaid(ctx context.Context, orderID, paymentID string) (int, error) {
	const op = "storage.MarkPaymentPaid"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = 'paid', payment_id = $1
			  WHERE order_id = $2`
	result, err := s.DB.ExecContext(ctx, query, paymentID, orderID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListPaymentsByUser возвращает историю платежей пользователя с пагинацией.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, payment_id, receipt, plan, amount, currency, status, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserUID, &p.OrderID, &p.PaymentID, &p.Receipt,
			&p.Plan, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
