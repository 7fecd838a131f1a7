// Package matricare собирает HTTP-приложение платформы: маршруты,
// middleware и зависимости обработчиков.
package matricare

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/matricare/matricare-backend/internal/http/handlers/appointment/appointmentcreate"
	"github.com/matricare/matricare-backend/internal/http/handlers/appointment/appointmentlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/appointment/appointmentstatus"
	"github.com/matricare/matricare-backend/internal/http/handlers/auth/login"
	"github.com/matricare/matricare-backend/internal/http/handlers/auth/register"
	"github.com/matricare/matricare-backend/internal/http/handlers/forum/commentcreate"
	"github.com/matricare/matricare-backend/internal/http/handlers/forum/commentlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/forum/postcreate"
	"github.com/matricare/matricare-backend/internal/http/handlers/forum/postlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/forum/postvisibility"
	"github.com/matricare/matricare-backend/internal/http/handlers/health"
	"github.com/matricare/matricare-backend/internal/http/handlers/nutrition/planfull"
	"github.com/matricare/matricare-backend/internal/http/handlers/nutrition/planpreview"
	"github.com/matricare/matricare-backend/internal/http/handlers/order/ordercreate"
	"github.com/matricare/matricare-backend/internal/http/handlers/order/orderlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/payment/paymentcheckout"
	"github.com/matricare/matricare-backend/internal/http/handlers/payment/paymentlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/payment/paymentverify"
	"github.com/matricare/matricare-backend/internal/http/handlers/profile/profileget"
	"github.com/matricare/matricare-backend/internal/http/handlers/profile/profileupdate"
	"github.com/matricare/matricare-backend/internal/http/handlers/subscription/subscriptionget"
	"github.com/matricare/matricare-backend/internal/http/handlers/support/supportcreate"
	"github.com/matricare/matricare-backend/internal/http/handlers/support/supportlist"
	"github.com/matricare/matricare-backend/internal/http/handlers/support/supportreply"
	"github.com/matricare/matricare-backend/internal/http/middlewarectx"
	"github.com/matricare/matricare-backend/internal/models"
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

// Services объединяет бизнес-сервисы, необходимые HTTP-приложению.
type Services struct {
	Auth         *authservice.AuthService
	Subscription *subscriptionservice.SubscriptionService
	Profile      *profileservice.ProfileService
	Nutrition    *nutritionservice.NutritionService
	Forum        *forumservice.ForumService
	Appointment  *appointmentservice.AppointmentService
	Support      *supportservice.SupportService
	Payment      *paymentservice.PaymentService
	Order        *orderservice.OrderService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, svc.Profile).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, svc.Profile).ServeHTTP)

			r.Get("/subscription", subscriptionget.New(logger, svc.Subscription).ServeHTTP)

			r.Get("/plan/preview", planpreview.New(logger, svc.Nutrition).ServeHTTP)
			// Полный недельный план доступен только активной premium-подписке
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.EntitlementMiddleware(logger, svc.Subscription))
				r.Get("/plan/full", planfull.New(logger, svc.Nutrition).ServeHTTP)
			})

			r.Post("/forum/posts", postcreate.New(logger, svc.Forum).ServeHTTP)
			r.Get("/forum/posts", postlist.New(logger, svc.Forum).ServeHTTP)
			r.Post("/forum/posts/{id}/comments", commentcreate.New(logger, svc.Forum).ServeHTTP)
			r.Get("/forum/posts/{id}/comments", commentlist.New(logger, svc.Forum).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleAdmin))
				r.Put("/forum/posts/{id}/visibility", postvisibility.New(logger, svc.Forum).ServeHTTP)
			})

			r.Post("/appointments", appointmentcreate.New(logger, svc.Appointment).ServeHTTP)
			r.Get("/appointments", appointmentlist.New(logger, svc.Appointment).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleExpert, models.RoleAdmin))
				r.Put("/appointments/{id}/status", appointmentstatus.New(logger, svc.Appointment).ServeHTTP)
			})

			r.Post("/support", supportcreate.New(logger, svc.Support).ServeHTTP)
			r.Get("/support", supportlist.New(logger, svc.Support).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleExpert, models.RoleAdmin))
				r.Post("/support/{id}/reply", supportreply.New(logger, svc.Support).ServeHTTP)
			})

			r.Post("/payments/checkout", paymentcheckout.New(logger, svc.Payment).ServeHTTP)
			r.Post("/payments/verify", paymentverify.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, svc.Payment).ServeHTTP)

			r.Post("/orders", ordercreate.New(logger, svc.Order).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, svc.Order).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
