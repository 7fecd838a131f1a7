// Package paymentverify реализует HTTP-обработчик подтверждения оплаты.
//
// Подпись шлюза проверяется до любого изменения состояния: при несовпадении
// запрос отклоняется, записи о платеже и подписке не трогаются.
package paymentverify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/matricare/matricare-backend/internal/http/response"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/services/payment"
)

// Request — данные подтверждения оплаты от клиента.
type Request struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	Verify(ctx context.Context, orderID, paymentID, signature string) error
}

// Handler управляет HTTP-запросами на подтверждение оплаты.
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
// @Summary Подтвердить оплату
// @Description Проверяет подпись шлюза и активирует подписку на месяц.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные подтверждения"
// @Success 200 {object} map[string]any "Оплата подтверждена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Подпись не совпала"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 409 {object} response.ErrorResponse "Заказ уже подтверждён"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.service.Verify(r.Context(), req.OrderID, req.PaymentID, req.Signature); err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			log.Error("invalid payment signature", slog.String("order_id", req.OrderID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid payment signature"))
		case errors.Is(err, payment.ErrPaymentNotFound):
			log.Error("payment not found", slog.String("order_id", req.OrderID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment not found"))
		case errors.Is(err, payment.ErrAlreadyPaid):
			log.Error("payment already confirmed", slog.String("order_id", req.OrderID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("payment already confirmed"))
		default:
			log.Error("failed to verify payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not verify payment"))
		}
		return
	}

	log.Info("payment verified", slog.String("order_id", req.OrderID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order_id": req.OrderID,
		"status":   "paid",
	}))
}
