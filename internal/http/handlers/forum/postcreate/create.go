// Package postcreate реализует HTTP-обработчик публикации поста в сообществе.
package postcreate

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
	"github.com/matricare/matricare-backend/internal/services/forum"
)

// Service описывает интерфейс бизнес-логики публикации поста.
type Service interface {
	CreatePost(ctx context.Context, authorUsername, title, content, category string) (int, error)
}

// Handler управляет HTTP-запросами на публикацию поста.
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
// @Summary Опубликовать пост
// @Description Создает пост в сообществе. Пустая категория заменяется на General.
// @Tags Forum
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyForumPost true "Данные поста"
// @Success 200 {object} map[string]any "Пост создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forum/posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forum.postcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyForumPost
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

	id, err := h.service.CreatePost(r.Context(), username, req.Title, req.Content, req.Category)
	if err != nil {
		if errors.Is(err, forum.ErrEmptyContent) {
			log.Error("empty post content")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("title and content must not be empty"))
			return
		}
		log.Error("failed to create post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create post"))
		return
	}

	log.Info("forum post created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"post_id": id,
	}))
}
