// Package supportcreate реализует HTTP-обработчик создания обращения в поддержку.
package supportcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/services/support"
)

// Service описывает интерфейс бизнес-логики обращений.
type Service interface {
	Create(ctx context.Context, authorUsername, subject, content string) (int, error)
}

// Handler управляет HTTP-запросами на создание обращения.
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
// @Summary Создать обращение в поддержку
// @Description Регистрирует обращение в статусе open. Тема и текст из одних пробелов отклоняются.
// @Tags Support
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummySupportMessage true "Обращение"
// @Success 200 {object} map[string]any "Обращение создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /support [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.support.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySupportMessage
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

	id, err := h.service.Create(r.Context(), username, req.Subject, req.Content)
	if err != nil {
		if errors.Is(err, support.ErrEmptyContent) {
			log.Error("empty support message content")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("subject and content must not be empty"))
			return
		}
		log.Error("failed to create support message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create support message"))
		return
	}

	log.Info("support message created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message_id": id,
	}))
}
