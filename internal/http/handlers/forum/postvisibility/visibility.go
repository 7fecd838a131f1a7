// Package postvisibility реализует HTTP-обработчик модерации видимости поста.
// Маршрут закрыт middleware проверки роли admin.
package postvisibility

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

	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/services/forum"
)

// Request — новое состояние видимости поста.
type Request struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	SetPostHidden(ctx context.Context, id int, hidden bool) error
}

// Handler управляет HTTP-запросами на модерацию видимости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скрыть или показать пост
// @Description Переключает видимость поста. Доступно только администратору.
// @Tags Forum
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID поста"
// @Param request body Request true "Новое состояние видимости"
// @Success 200 {object} map[string]any "Видимость изменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forum/posts/{id}/visibility [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forum.postvisibility"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Hidden == nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.SetPostHidden(r.Context(), postID, *req.Hidden); err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			log.Error("post not found", slog.Int("post_id", postID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to set post visibility", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update post visibility"))
		return
	}

	log.Info("post visibility updated", slog.Int("post_id", postID), slog.Bool("hidden", *req.Hidden))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"post_id": postID,
		"hidden":  *req.Hidden,
	}))
}
