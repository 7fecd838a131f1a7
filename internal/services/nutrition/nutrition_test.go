package nutrition

import (
	"context"
	"errors"
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

func TestGetPlan_CacheMiss(t *testing.T) {
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "plan:pregnancy:vegetarian", mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, "plan:pregnancy:vegetarian", mock.Anything, 24*time.Hour).Return(nil)

	svc := New(new(UsersMock), cache, discardLogger())
	plan, err := svc.GetPlan(context.Background(), "pregnancy", "vegetarian")
	require.NoError(t, err)
	assert.Len(t, plan.Days, 7)
	assert.Equal(t, "Spinach & Paneer Paratha", plan.Days[0].Breakfast)
	cache.AssertExpectations(t)
}

// Разные предпочтения одной категории не делят запись кеша:
// план хранит исходный diet_type, и vegan не должен получить vegetarian.
func TestGetPlan_DistinctKeysWithinCategory(t *testing.T) {
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "plan:pregnancy:vegan", mock.Anything).Return(false, nil).Once()
	cache.On("Get", mock.Anything, "plan:pregnancy:vegetarian", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "plan:pregnancy:vegan", mock.Anything, 24*time.Hour).Return(nil).Once()
	cache.On("Set", mock.Anything, "plan:pregnancy:vegetarian", mock.Anything, 24*time.Hour).Return(nil).Once()

	svc := New(new(UsersMock), cache, discardLogger())

	veganPlan, err := svc.GetPlan(context.Background(), "pregnancy", "vegan")
	require.NoError(t, err)
	assert.Equal(t, "vegan", veganPlan.DietType)

	vegetarianPlan, err := svc.GetPlan(context.Background(), "pregnancy", "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, "vegetarian", vegetarianPlan.DietType)

	cache.AssertExpectations(t)
}

func TestGetPlan_CacheErrorFallsThrough(t *testing.T) {
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := New(new(UsersMock), cache, discardLogger())
	plan, err := svc.GetPlan(context.Background(), "postpartum", "keto")
	require.NoError(t, err)
	assert.Len(t, plan.Days, 7)
}

func TestWeeklyPlanForUser(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*UsersMock)
		wantErr   bool
		wantStage string
	}{
		{
			name: "план по профилю пользователя",
			setupMock: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
					Username: "priya", LifeStage: "pregnancy", DietType: "vegetarian",
				}, nil)
			},
			wantStage: "pregnancy",
		},
		{
			name: "пользователь не найден",
			setupMock: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "priya").Return(nil, errors.New("no rows"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMock(users)
			cache := new(CacheMock)
			cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
			cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

			svc := New(users, cache, discardLogger())
			plan, err := svc.WeeklyPlanForUser(context.Background(), "priya")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStage, plan.Stage)
		})
	}
}

func TestPreviewForUser_SingleDay(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
		Username: "priya", LifeStage: "pregnancy", DietType: "non-vegetarian",
	}, nil)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := New(users, cache, discardLogger())
	preview, err := svc.PreviewForUser(context.Background(), "priya")
	require.NoError(t, err)
	require.Len(t, preview.Days, 1)
	assert.Equal(t, 1, preview.Days[0].Day)
}
