package supportcreate

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/matricare/matricare-backend/internal/services/support"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, authorUsername, subject, content string) (int, error) {
	args := m.Called(ctx, authorUsername, subject, content)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSupportCreateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		username       string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "обращение создано",
			requestBody: models.DummySupportMessage{Subject: "Вопрос", Content: "Как сменить тариф?"},
			username:    "priya",
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "priya", "Вопрос", "Как сменить тариф?").Return(3, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			username:       "priya",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "нет темы обращения",
			requestBody:    models.DummySupportMessage{Content: "text"},
			username:       "priya",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Subject is a required field",
		},
		{
			name:        "текст из пробелов",
			requestBody: models.DummySupportMessage{Subject: "Вопрос", Content: "   "},
			username:    "priya",
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "priya", "Вопрос", "   ").
					Return(0, support.ErrEmptyContent).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "must not be empty",
		},
		{
			name:           "нет пользователя в контексте",
			requestBody:    models.DummySupportMessage{Subject: "Вопрос", Content: "text"},
			username:       "",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/support", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)

			var resp struct {
				Status string         `json:"status"`
				Error  string         `json:"error"`
				Data   map[string]any `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Contains(t, resp.Error, tt.wantError)
				return
			}
			assert.Equal(t, "OK", resp.Status)
			assert.EqualValues(t, 3, resp.Data["message_id"])
			service.AssertExpectations(t)
		})
	}
}
