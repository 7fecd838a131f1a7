package postvisibility

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

	"github.com/matricare/matricare-backend/internal/services/forum"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) SetPostHidden(ctx context.Context, id int, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVisibilityHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		postID         string
		requestBody    any
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "пост скрыт",
			postID:      "7",
			requestBody: map[string]any{"hidden": true},
			setupMock: func(m *ServiceMock) {
				m.On("SetPostHidden", mock.Anything, 7, true).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "некорректный id",
			postID:         "abc",
			requestBody:    map[string]any{"hidden": true},
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid post id",
		},
		{
			name:           "нет поля hidden",
			postID:         "7",
			requestBody:    map[string]any{},
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:        "пост не найден",
			postID:      "7",
			requestBody: map[string]any{"hidden": true},
			setupMock: func(m *ServiceMock) {
				m.On("SetPostHidden", mock.Anything, 7, true).Return(forum.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      "post not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/forum/posts/"+tt.postID+"/visibility", bytes.NewReader(body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.postID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
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
			assert.Equal(t, true, resp.Data["hidden"])
			service.AssertExpectations(t)
		})
	}
}
