// Package appointmentlist реализует HTTP-обработчик списка консультаций.
// Объем выдачи зависит от роли: user видит свои записи, expert — назначенные
// ему, admin — все.
package appointmentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка консультаций.
type Service interface {
	ListForRole(ctx context.Context, username, role string, limit, offset int) ([]*models.Appointment, error)
}

// Handler управляет HTTP-запросами на список консультаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список консультаций
// @Description Возвращает консультации в зависимости от роли запрашивающего.
// @Tags Appointments
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Консультации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, ok := r.Context().Value(middlewarectx.Role).(string)
	if !ok || role == "" {
		log.Error("role not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	appointments, err := h.service.ListForRole(r.Context(), username, role, limit, offset)
	if err != nil {
		log.Error("failed to list appointments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list appointments"))
		return
	}

	log.Info("appointments listed", "count", len(appointments))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":   len(appointments),
		"appointments": appointments,
	}))
}
