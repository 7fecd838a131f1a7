// Package planfull реализует HTTP-обработчик полного недельного плана питания.
// Маршрут закрыт middleware проверки премиум-доступа.
package planfull

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики недельного плана.
type Service interface {
	WeeklyPlanForUser(ctx context.Context, username string) (*models.WeeklyPlan, error)
}

// Handler управляет HTTP-запросами на полный план питания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Недельный план питания
// @Description Возвращает все семь дней плана с добавками. Требует активной премиум-подписки.
// @Tags Nutrition
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Недельный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет активной премиум-подписки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plan/full [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nutrition.full"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	plan, err := h.service.WeeklyPlanForUser(r.Context(), username)
	if err != nil {
		log.Error("failed to build weekly plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build plan"))
		return
	}

	log.Info("weekly plan served", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"plan": plan,
	}))
}
