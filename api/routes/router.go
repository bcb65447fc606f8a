package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/kitchen-inventory-backend/api/controllers"
	"github.com/angelmondragon/kitchen-inventory-backend/api/middleware"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/auth"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/inventory"
	product "github.com/angelmondragon/kitchen-inventory-backend/internal/products"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/auth/session"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type rateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Observability groups the optional metrics wiring; a zero value disables it.
type Observability struct {
	HTTP     *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	obs Observability,
	authService auth.Service,
	registerService auth.RegisterService,
	productService product.Service,
	inventoryService inventory.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(obs.HTTP),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	readiness := map[string]controllers.Pinger{"database": dbP}
	var limiter rateLimitStore
	if redisClient != nil {
		readiness["redis"] = redisClient
		limiter = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if obs.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(obs.Gatherer))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(registerService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(inventoryService, logg))
			r.Post("/", controllers.CreateInventoryItem(inventoryService, logg))
			r.Get("/{itemId}", controllers.GetInventoryItem(inventoryService, logg))
			r.Patch("/{itemId}", controllers.UpdateInventoryItem(inventoryService, logg))
			r.Delete("/{itemId}", controllers.DeleteInventoryItem(inventoryService, logg))
		})
	})

	return r
}
