package planfull

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) WeeklyPlanForUser(ctx context.Context, username string) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPlan), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestFullPlanHandler_ServeHTTP(t *testing.T) {
	plan := &models.WeeklyPlan{
		DietType: "vegetarian",
		Stage:    "pregnancy",
		Days: []models.DailyPlan{
			{Day: 1, Breakfast: "Spinach & Paneer Paratha"},
		},
		Supplements: []string{"Folic Acid"},
	}

	tests := []struct {
		name           string
		username       string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:     "план возвращается",
			username: "priya",
			setupMock: func(m *ServiceMock) {
				m.On("WeeklyPlanForUser", mock.Anything, "priya").Return(plan, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "нет пользователя в контексте",
			username:       "",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:     "ошибка сервиса",
			username: "priya",
			setupMock: func(m *ServiceMock) {
				m.On("WeeklyPlanForUser", mock.Anything, "priya").Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not build plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/plan/full", nil)
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)

			var resp struct {
				Status string `json:"status"`
				Error  string `json:"error"`
				Data   struct {
					Plan models.WeeklyPlan `json:"plan"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Contains(t, resp.Error, tt.wantError)
				return
			}
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, "Spinach & Paneer Paratha", resp.Data.Plan.Days[0].Breakfast)
			service.AssertExpectations(t)
		})
	}
}
