// Package supportreply реализует HTTP-обработчик ответа на обращение.
// Маршрут закрыт middleware проверки роли expert или admin.
package supportreply

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
	"github.com/matricare/matricare-backend/internal/services/support"
)

// Request — текст ответа на обращение.
type Request struct {
	Content string `json:"content" validate:"required"`
}

// Service описывает интерфейс бизнес-логики ответа на обращение.
type Service interface {
	Reply(ctx context.Context, id int, replyAuthor, content string) error
}

// Handler управляет HTTP-запросами на ответ поддержки.
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
// @Summary Ответить на обращение
// @Description Записывает единственный ответ и переводит обращение в статус replied.
// @Tags Support
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID обращения"
// @Param request body Request true "Текст ответа"
// @Success 200 {object} map[string]any "Ответ сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Обращение не найдено"
// @Failure 409 {object} response.ErrorResponse "Обращение уже закрыто"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /support/{id}/reply [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.support.reply"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid message id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid message id"))
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

	if err := h.service.Reply(r.Context(), id, username, req.Content); err != nil {
		switch {
		case errors.Is(err, support.ErrEmptyContent):
			log.Error("empty reply content")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("content must not be empty"))
		case errors.Is(err, support.ErrNotFound):
			log.Error("support message not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("support message not found"))
		case errors.Is(err, support.ErrAlreadyReplied):
			log.Error("support message already replied", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("support message already replied"))
		default:
			log.Error("failed to reply to support message", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not reply to support message"))
		}
		return
	}

	log.Info("support message replied", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message_id": id,
	}))
}
