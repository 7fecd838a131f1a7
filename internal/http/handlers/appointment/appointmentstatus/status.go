// Package appointmentstatus реализует HTTP-обработчик смены статуса консультации.
// Маршрут закрыт middleware проверки роли expert или admin.
package appointmentstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/services/appointment"
)

// Request — новый статус консультации.
type Request struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id int, status, callerUsername, callerRole string) error
}

// Handler управляет HTTP-запросами на смену статуса консультации.
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
// @Summary Изменить статус консультации
// @Description Переводит консультацию в новый статус. Завершённые и отменённые записи менять нельзя; эксперт меняет только свои записи.
// @Tags Appointments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID консультации"
// @Param request body Request true "Новый статус"
// @Success 200 {object} map[string]any "Статус изменён"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Консультация назначена другому эксперту"
// @Failure 404 {object} response.ErrorResponse "Консультация не найдена"
// @Failure 409 {object} response.ErrorResponse "Консультация уже закрыта"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid appointment id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid appointment id"))
		return
	}

	var req Request
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

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	if err := h.service.UpdateStatus(r.Context(), id, req.Status, username, role); err != nil {
		switch {
		case errors.Is(err, appointment.ErrNotFound):
			log.Error("appointment not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("appointment not found"))
		case errors.Is(err, appointment.ErrNotAssigned):
			log.Error("appointment assigned to another expert", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("appointment assigned to another expert"))
		case errors.Is(err, appointment.ErrAlreadyClosed):
			log.Error("appointment already closed", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("appointment already closed"))
		default:
			log.Error("failed to update appointment status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update appointment"))
		}
		return
	}

	log.Info("appointment status updated", slog.Int("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"appointment_id": id,
		"status":         req.Status,
	}))
}
