package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanda94/super-admin-backend/api/controllers"
	"github.com/sanda94/super-admin-backend/api/middleware"
	"github.com/sanda94/super-admin-backend/internal/audit"
	"github.com/sanda94/super-admin-backend/internal/notifications"
	"github.com/sanda94/super-admin-backend/internal/orders"
	"github.com/sanda94/super-admin-backend/pkg/config"
	"github.com/sanda94/super-admin-backend/pkg/db"
	"github.com/sanda94/super-admin-backend/pkg/enums"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	ordersService orders.Service,
	auditService audit.Service,
	notificationsService notifications.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Get("/{orderId}/audit", controllers.OrderAuditTrail(ordersService, auditService, logg))
			r.Patch("/{orderId}", controllers.EditOrder(ordersService, logg))
			r.Delete("/{orderId}", controllers.DeleteOrder(ordersService, logg))

			// Workflow commands require a staff role; the service enforces the
			// finer capability rules.
			r.With(middleware.RequireAnyRole(logg, string(enums.MemberRoleAdmin), string(enums.MemberRoleManager))).
				Post("/{orderId}/transition", controllers.TransitionOrder(ordersService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/pending-count", controllers.PendingCount(notificationsService, logg))
		})
	})

	return r
}
