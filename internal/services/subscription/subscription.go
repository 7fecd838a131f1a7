// Package subscription отвечает за чтение состояния подписки и проверку
// права доступа к премиум-функциям.
//
// Решение о доступе принимается только здесь: хендлеры и middleware не
// сравнивают статусы и тарифы напрямую.
package subscription

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/matricare/matricare-backend/internal/lib/entitlement"
	"github.com/matricare/matricare-backend/internal/models"
)

// Время жизни кешированного решения о доступе.
const entitlementTTL = 5 * time.Minute

// ErrNotFound возвращается, когда у пользователя нет записи подписки.
var ErrNotFound = errors.New("subscription not found")

// UserRepository описывает доступ к данным пользователя.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SubscriptionRepository описывает доступ к записям подписок.
type SubscriptionRepository interface {
	GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// SubscriptionService предоставляет операции чтения подписки.
type SubscriptionService struct {
	users UserRepository
	subs  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр SubscriptionService.
func New(users UserRepository, subs SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		users: users,
		subs:  subs,
		cache: cache,
		log:   log,
	}
}

// IsUserEntitled сообщает, открыт ли пользователю премиум-доступ.
// Решение кешируется на entitlementTTL; ошибки кеша не блокируют
// проверку, любая ошибка чтения пользователя трактуется как отказ.
func (s *SubscriptionService) IsUserEntitled(ctx context.Context, username string) (bool, error) {
	cacheKey := "entitled:" + username

	var cached bool
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read entitlement from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	entitled := entitlement.IsEntitled(user.SubscriptionStatus, user.SubscriptionPlan)

	if err := s.cache.Set(ctx, cacheKey, entitled, entitlementTTL); err != nil {
		s.log.Warn("failed to cache entitlement", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return entitled, nil
}

// GetSubscription возвращает запись подписки пользователя.
func (s *SubscriptionService) GetSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	sub, err := s.subs.GetSubscriptionByUserUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}
