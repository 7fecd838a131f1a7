package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
)

// EntitlementService сообщает, открыт ли пользователю премиум-доступ.
type EntitlementService interface {
	IsUserEntitled(ctx context.Context, username string) (bool, error)
}

// EntitlementMiddleware закрывает маршрут для пользователей без активной
// премиум-подписки. Ошибка проверки также закрывает доступ.
func EntitlementMiddleware(log *slog.Logger, subscriptions EntitlementService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := r.Context().Value(User).(string)
			if !ok || username == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			entitled, err := subscriptions.IsUserEntitled(r.Context(), username)
			if err != nil {
				log.Error("failed to check subscription", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !entitled {
				log.Info("premium access denied", slog.String("username", username))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("active premium subscription required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleMiddleware пропускает запрос только для перечисленных ролей.
func RequireRoleMiddleware(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user role missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			if _, ok := allowed[role]; !ok {
				log.Info("role access denied", slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
