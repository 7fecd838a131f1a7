package repository

import (
	"context"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// UpsertSubscription создает или перезаписывает снимок подписки пользователя.
// На пользователя хранится ровно одна запись, история не ведется.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan, status, start_date, end_date, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  ON CONFLICT (user_uid) DO UPDATE
			  SET plan = EXCLUDED.plan,
			      status = EXCLUDED.status,
			      start_date = EXCLUDED.start_date,
			      end_date = EXCLUDED.end_date,
			      updated_at = NOW()
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.Plan, sub.Status, sub.StartDate, sub.EndDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSubscriptionByUserUID возвращает снимок подписки пользователя.
func (s *Storage) GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan, status, start_date, end_date, updated_at
			  FROM subscriptions
			  WHERE user_uid = $1`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.Plan, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}
