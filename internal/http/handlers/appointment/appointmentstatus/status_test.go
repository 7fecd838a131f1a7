package appointmentstatus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/services/appointment"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateStatus(ctx context.Context, id int, status, callerUsername, callerRole string) error {
	args := m.Called(ctx, id, status, callerUsername, callerRole)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStatusHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		role           string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:     "назначенный эксперт завершает консультацию",
			username: "dr_ivanova",
			role:     models.RoleExpert,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, 7, models.AppointmentCompleted, "dr_ivanova", models.RoleExpert).
					Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:     "чужой эксперт получает отказ",
			username: "dr_petrova",
			role:     models.RoleExpert,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, 7, models.AppointmentCompleted, "dr_petrova", models.RoleExpert).
					Return(appointment.ErrNotAssigned).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      "appointment assigned to another expert",
		},
		{
			name:     "консультация не найдена",
			username: "dr_ivanova",
			role:     models.RoleExpert,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, 7, models.AppointmentCompleted, "dr_ivanova", models.RoleExpert).
					Return(appointment.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      "appointment not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			body, err := json.Marshal(Request{Status: models.AppointmentCompleted})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/7/status", bytes.NewReader(body))
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "7")
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)

			var resp struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Contains(t, resp.Error, tt.wantError)
			} else {
				assert.Equal(t, "OK", resp.Status)
			}
			service.AssertExpectations(t)
		})
	}
}
