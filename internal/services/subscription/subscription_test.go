package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type SubsMock struct{ mock.Mock }

func (m *SubsMock) GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsUserEntitled(t *testing.T) {
	tests := []struct {
		name    string
		plan    string
		status  string
		want    bool
		repoErr error
		wantErr bool
	}{
		{name: "активный premium", plan: "premium", status: "active", want: true},
		{name: "активный specialized", plan: "specialized", status: "active", want: true},
		{name: "активный basic не дает доступа", plan: "basic", status: "active", want: false},
		{name: "истекший premium", plan: "premium", status: "expired", want: false},
		{name: "ошибка чтения закрывает доступ", repoErr: errors.New("no rows"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			if tt.repoErr != nil {
				users.On("GetUserByUsername", mock.Anything, "priya").Return(nil, tt.repoErr)
			} else {
				users.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
					Username:           "priya",
					SubscriptionPlan:   tt.plan,
					SubscriptionStatus: tt.status,
				}, nil)
			}
			cache := new(CacheMock)
			cache.On("Get", mock.Anything, "entitled:priya", mock.Anything).Return(false, nil)
			cache.On("Set", mock.Anything, "entitled:priya", mock.Anything, mock.Anything).Return(nil).Maybe()

			svc := New(users, new(SubsMock), cache, discardLogger())
			got, err := svc.IsUserEntitled(context.Background(), "priya")

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Попадание в кеш отвечает без похода в базу.
func TestIsUserEntitled_CacheHit(t *testing.T) {
	users := new(UsersMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "entitled:priya", mock.Anything).
		Run(func(args mock.Arguments) {
			*(args.Get(2).(*bool)) = true
		}).
		Return(true, nil).Once()

	svc := New(users, new(SubsMock), cache, discardLogger())
	got, err := svc.IsUserEntitled(context.Background(), "priya")

	require.NoError(t, err)
	assert.True(t, got)
	users.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

// Промах кеша читает пользователя и сохраняет решение на пять минут.
func TestIsUserEntitled_CacheMissPopulates(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
		Username:           "priya",
		SubscriptionPlan:   "premium",
		SubscriptionStatus: "active",
	}, nil).Once()
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "entitled:priya", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "entitled:priya", true, 5*time.Minute).Return(nil).Once()

	svc := New(users, new(SubsMock), cache, discardLogger())
	got, err := svc.IsUserEntitled(context.Background(), "priya")

	require.NoError(t, err)
	assert.True(t, got)
	users.AssertExpectations(t)
	cache.AssertExpectations(t)
}

// Ошибка кеша не блокирует проверку: решение принимается по базе.
func TestIsUserEntitled_CacheErrorFallsThrough(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
		Username:           "priya",
		SubscriptionPlan:   "premium",
		SubscriptionStatus: "active",
	}, nil).Once()
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := New(users, new(SubsMock), cache, discardLogger())
	got, err := svc.IsUserEntitled(context.Background(), "priya")

	require.NoError(t, err)
	assert.True(t, got)
}

func TestGetSubscription(t *testing.T) {
	t.Run("подписка найдена", func(t *testing.T) {
		subs := new(SubsMock)
		subs.On("GetSubscriptionByUserUID", mock.Anything, "uid-1").Return(&models.Subscription{
			UserUID: "uid-1",
			Plan:    "premium",
			Status:  "active",
		}, nil).Once()

		svc := New(new(UsersMock), subs, new(CacheMock), discardLogger())
		sub, err := svc.GetSubscription(context.Background(), "uid-1")

		require.NoError(t, err)
		assert.Equal(t, "premium", sub.Plan)
		subs.AssertExpectations(t)
	})

	t.Run("подписки нет", func(t *testing.T) {
		subs := new(SubsMock)
		subs.On("GetSubscriptionByUserUID", mock.Anything, "uid-1").
			Return(nil, fmt.Errorf("storage.GetSubscriptionByUserUID: %w", sql.ErrNoRows)).Once()

		svc := New(new(UsersMock), subs, new(CacheMock), discardLogger())
		_, err := svc.GetSubscription(context.Background(), "uid-1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ошибка хранилища пробрасывается", func(t *testing.T) {
		subs := new(SubsMock)
		subs.On("GetSubscriptionByUserUID", mock.Anything, "uid-1").
			Return(nil, errors.New("connection refused")).Once()

		svc := New(new(UsersMock), subs, new(CacheMock), discardLogger())
		_, err := svc.GetSubscription(context.Background(), "uid-1")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
