// Package commentcreate реализует HTTP-обработчик добавления комментария к посту.
package commentcreate

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
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/services/forum"
)

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	CreateComment(ctx context.Context, postID int, authorUsername, content string) (int, error)
}

// Handler управляет HTTP-запросами на добавление комментария.
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
// @Summary Добавить комментарий
// @Description Добавляет комментарий к существующему посту.
// @Tags Forum
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID поста"
// @Param request body models.DummyForumComment true "Текст комментария"
// @Success 200 {object} map[string]any "Комментарий создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forum/posts/{id}/comments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forum.commentcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || postID <= 0 {
		log.Error("invalid post id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid post id"))
		return
	}

	var req models.DummyForumComment
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

	id, err := h.service.CreateComment(r.Context(), postID, username, req.Content)
	if err != nil {
		if errors.Is(err, forum.ErrEmptyContent) {
			log.Error("empty comment content")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("content must not be empty"))
			return
		}
		if errors.Is(err, forum.ErrNotFound) {
			log.Error("post not found", slog.Int("post_id", postID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to create comment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create comment"))
		return
	}

	log.Info("forum comment created", slog.Int("id", id), slog.Int("post_id", postID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"comment_id": id,
	}))
}
