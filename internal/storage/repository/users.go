package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/matricare/matricare-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role, life_stage,
			      diet_type, subscription_plan, subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role, user.LifeStage,
		user.DietType, user.SubscriptionPlan, user.SubscriptionStatus).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, life_stage, diet_type,
			      subscription_plan, subscription_status, subscription_expiry, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, life_stage, diet_type,
			      subscription_plan, subscription_status, subscription_expiry, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var subscriptionExpiry sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &u.LifeStage, &u.DietType, &u.SubscriptionPlan,
		&u.SubscriptionStatus, &subscriptionExpiry, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if subscriptionExpiry.Valid {
		u.SubscriptionExpiry = &subscriptionExpiry.Time
	}
	return u, nil
}

// UpdateProfile обновляет изменяемые поля профиля пользователя
// и возвращает количество изменённых строк.
func (s *Storage) UpdateProfile(ctx context.Context, username string, upd models.ProfileUpdate) (int, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET email = COALESCE(NULLIF($1, ''), email),
			      life_stage = COALESCE(NULLIF($2, ''), life_stage),
			      diet_type = COALESCE(NULLIF($3, ''), diet_type)
			  WHERE username = $4`
	result, err := s.DB.ExecContext(ctx, query, upd.Email, upd.LifeStage, upd.DietType, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateSubscriptionFields обновляет снимок подписки на записи пользователя.
func (s *Storage) UpdateSubscriptionFields(ctx context.Context, userUID, plan, status string, expiry time.Time) error {
	const op = "storage.UpdateSubscriptionFields"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_plan = $1,
			      subscription_status = $2,
			      subscription_expiry = $3
			  WHERE uid = $4`
	if _, err := s.DB.ExecContext(ctx, query, plan, status, expiry, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ExpireLapsedSubscriptions переводит в inactive пользователей,
// у которых оплаченный период уже закончился, вместе с их записями
// подписок. Возвращает число затронутых пользователей.
func (s *Storage) ExpireLapsedSubscriptions(ctx context.Context) (int, error) {
	const op = "storage.ExpireLapsedSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	usersQuery := `UPDATE users
			  SET subscription_status = 'inactive'
			  WHERE subscription_status = 'active'
			    AND subscription_expiry IS NOT NULL
			    AND subscription_expiry < NOW()`
	result, err := tx.ExecContext(ctx, usersQuery)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	subsQuery := `UPDATE subscriptions
			  SET status = 'inactive', updated_at = NOW()
			  WHERE status = 'active'
			    AND end_date < NOW()`
	if _, err := tx.ExecContext(ctx, subsQuery); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
