// Package commentlist реализует HTTP-обработчик списка комментариев поста.
package commentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	ListComments(ctx context.Context, postID int) ([]*models.ForumComment, error)
}

// Handler управляет HTTP-запросами на список комментариев.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Комментарии поста
// @Description Возвращает комментарии поста в хронологическом порядке.
// @Tags Forum
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID поста"
// @Success 200 {object} map[string]any "Комментарии"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID поста"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forum/posts/{id}/comments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forum.commentlist"
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

	comments, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list comments"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(comments),
		"comments":   comments,
	}))
}
