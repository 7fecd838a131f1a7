package matricare

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/matricare/matricare-backend/internal/cache"
	"github.com/matricare/matricare-backend/internal/config"
	"github.com/matricare/matricare-backend/internal/lib/jwt"
	librabbitmq "github.com/matricare/matricare-backend/internal/lib/rabbitmq"
	"github.com/matricare/matricare-backend/internal/migrations"
	"github.com/matricare/matricare-backend/internal/paymentprovider"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
	appointmentservice "github.com/matricare/matricare-backend/internal/services/appointment"
	authservice "github.com/matricare/matricare-backend/internal/services/auth"
	forumservice "github.com/matricare/matricare-backend/internal/services/forum"
	nutritionservice "github.com/matricare/matricare-backend/internal/services/nutrition"
	orderservice "github.com/matricare/matricare-backend/internal/services/order"
	paymentservice "github.com/matricare/matricare-backend/internal/services/payment"
	profileservice "github.com/matricare/matricare-backend/internal/services/profile"
	subscriptionservice "github.com/matricare/matricare-backend/internal/services/subscription"
	supportservice "github.com/matricare/matricare-backend/internal/services/support"
	"github.com/matricare/matricare-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер платформы и его внешние соединения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: хранилище, миграции, кэш, брокер,
// платёжный шлюз, бизнес-сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	publisher := librabbitmq.NewPublisher(ch)

	providerClient := paymentprovider.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := &Services{
		Auth:         authservice.NewAuthService(db, jwtMaker),
		Subscription: subscriptionservice.New(db, db, cacheRedis, logger),
		Profile:      profileservice.New(db),
		Nutrition:    nutritionservice.New(db, cacheRedis, logger),
		Forum:        forumservice.New(db),
		Appointment:  appointmentservice.New(db),
		Support:      supportservice.New(db, db, publisher, logger),
		Payment:      paymentservice.New(db, db, db, providerClient, publisher, logger),
		Order:        orderservice.New(db),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
