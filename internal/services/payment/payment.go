// Package payment содержит бизнес-логику оплаты подписок: инициация
// чекаута в платежном шлюзе и подтверждение оплаты по подписи.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/matricare/matricare-backend/internal/lib/entitlement"
	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/metrics"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/paymentprovider"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
)

// Стоимость тарифов в пайсах за месяц.
var planPrices = map[string]int{
	entitlement.PlanPremium:     49900,
	entitlement.PlanSpecialized: 99900,
}

const currency = "INR"

// Окно действия подписки после успешной оплаты.
const subscriptionWindow = 30 * 24 * time.Hour

var (
	// ErrUnknownPlan возвращается для тарифа, которого нет в прайсе.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrInvalidSignature возвращается при несовпадении подписи шлюза.
	// До проверки подписи никакие записи не изменяются.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrPaymentNotFound возвращается для неизвестного заказа.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlreadyPaid возвращается при повторном подтверждении заказа.
	ErrAlreadyPaid = errors.New("payment already confirmed")
)

// PaymentRepository описывает контракт хранилища платежей.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	MarkPaymentPaid(ctx context.Context, orderID, paymentID string) (int, error)
	ListPaymentsByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error)
}

// SubscriptionRepository описывает запись снимка подписки.
type SubscriptionRepository interface {
	UpsertSubscription(ctx context.Context, sub models.Subscription) (int, error)
}

// UserRepository описывает чтение и обновление подписочных полей пользователя.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateSubscriptionFields(ctx context.Context, userUID, plan, status string, expiry time.Time) error
}

// OrderCreator создает заказ в платежном шлюзе и проверяет подпись.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Publisher публикует события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// PaymentService реализует чекаут и подтверждение оплаты.
type PaymentService struct {
	payments  PaymentRepository
	subs      SubscriptionRepository
	users     UserRepository
	provider  OrderCreator
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(payments PaymentRepository, subs SubscriptionRepository, users UserRepository,
	provider OrderCreator, publisher Publisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		payments:  payments,
		subs:      subs,
		users:     users,
		provider:  provider,
		publisher: publisher,
		log:       log,
	}
}

// CheckoutResult — данные для открытия платежной формы на клиенте.
type CheckoutResult struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Plan     string `json:"plan"`
}

// Checkout создает заказ в шлюзе и фиксирует платеж в статусе created.
func (s *PaymentService) Checkout(ctx context.Context, userUID, plan string) (*CheckoutResult, error) {
	amount, ok := planPrices[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	receipt := "rcpt_" + uuid.NewString()
	order, err := s.provider.CreateOrder(ctx, paymentprovider.CreateOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    map[string]any{"plan": plan},
	})
	if err != nil {
		return nil, err
	}

	_, err = s.payments.CreatePayment(ctx, models.Payment{
		UserUID:  userUID,
		OrderID:  order.ID,
		Receipt:  receipt,
		Plan:     plan,
		Amount:   amount,
		Currency: currency,
		Status:   models.PaymentStatusCreated,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:  order.ID,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Plan:     plan,
	}, nil
}

// Verify подтверждает оплату заказа. Подпись проверяется до любого
// обращения к хранилищу: при несовпадении состояние не меняется.
// После подтверждения подписка активируется на месяц вперед.
func (s *PaymentService) Verify(ctx context.Context, orderID, paymentID, signature string) error {
	if !s.provider.VerifySignature(orderID, paymentID, signature) {
		metrics.PaymentsVerified.WithLabelValues("rejected").Inc()
		return ErrInvalidSignature
	}

	payment, err := s.payments.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return ErrPaymentNotFound
	}
	if payment.Status == models.PaymentStatusPaid {
		return ErrAlreadyPaid
	}

	affected, err := s.payments.MarkPaymentPaid(ctx, orderID, paymentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}

	now := time.Now()
	expiry := now.Add(subscriptionWindow)
	if _, err := s.subs.UpsertSubscription(ctx, models.Subscription{
		UserUID:   payment.UserUID,
		Plan:      payment.Plan,
		Status:    entitlement.StatusActive,
		StartDate: now,
		EndDate:   expiry,
	}); err != nil {
		return err
	}
	if err := s.users.UpdateSubscriptionFields(ctx, payment.UserUID, payment.Plan, entitlement.StatusActive, expiry); err != nil {
		return err
	}

	metrics.PaymentsVerified.WithLabelValues("accepted").Inc()
	s.notifyPaid(ctx, payment)
	return nil
}

func (s *PaymentService) notifyPaid(ctx context.Context, payment *models.Payment) {
	user, err := s.users.GetUser(ctx, payment.UserUID)
	if err != nil {
		s.log.Warn("failed to load payer for notification", sl.Err(err))
		return
	}
	notice := models.PaymentNotice{
		Email:    user.Email,
		Username: user.Username,
		Plan:     payment.Plan,
		Amount:   payment.Amount,
		Currency: payment.Currency,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyPayment, notice); err != nil {
		s.log.Warn("failed to publish payment notice", sl.Err(err))
	}
}

// ListByUser возвращает историю платежей пользователя.
func (s *PaymentService) ListByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	return s.payments.ListPaymentsByUser(ctx, userUID, limit, offset)
}
