// Package appointmentcreate реализует HTTP-обработчик записи на консультацию.
package appointmentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/services/appointment"
)

// Service описывает интерфейс бизнес-логики записи на консультацию.
type Service interface {
	Create(ctx context.Context, userUsername, expertUsername string, scheduledAt time.Time, notes string) (int, error)
}

// Handler управляет HTTP-запросами на запись к эксперту.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на консультацию
// @Description Создает запись к эксперту в статусе scheduled. Дата — строка RFC3339 в будущем.
// @Tags Appointments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyAppointment true "Данные записи"
// @Success 200 {object} map[string]any "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAppointment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		log.Error("invalid scheduled_at", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("scheduled_at must be a valid RFC3339 timestamp"))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), username, req.ExpertUsername, scheduledAt, req.Notes)
	if err != nil {
		if errors.Is(err, appointment.ErrPastDate) {
			log.Error("scheduled time in the past")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("scheduled time must be in the future"))
			return
		}
		log.Error("failed to create appointment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create appointment"))
		return
	}

	log.Info("appointment created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"appointment_id": id,
	}))
}
