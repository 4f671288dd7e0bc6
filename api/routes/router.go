package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/controllers"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/middleware"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/auth"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/catalog"
	checkoutsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/checkout"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/customers"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/orders"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/auth/session"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/config"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/redis"
)

// Deps bundles everything the storefront router serves.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  prometheus.Gatherer

	Catalog   catalog.Service
	Cart      cart.Service
	Checkout  checkoutsvc.Service
	Orders    orders.Service
	Auth      auth.Service
	Customers customers.Repository
}

// NewRouter assembles the storefront HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	flashTTL := cfg.Catalog.FlashTTL

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
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

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, deps.Sessions, deps.Customers, logg))

		r.Get("/", controllers.Index(deps.Catalog, deps.Redis, logg))
		r.Get("/products/{slug}/", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/category/{slug}/", controllers.CategoryDetail(deps.Catalog, logg))

		r.Get("/cart/", controllers.CartFetch(deps.Cart, deps.Redis, logg))
		r.Get("/add-to-cart/{slug}/", controllers.AddToCart(deps.Cart, deps.Redis, flashTTL, logg))
		r.Get("/delete-from-cart/{slug}/", controllers.DeleteFromCart(deps.Cart, deps.Redis, flashTTL, logg))
		r.Post("/change-qty/{slug}/", controllers.ChangeQty(deps.Cart, deps.Redis, flashTTL, logg))

		r.Get("/checkout/", controllers.CheckoutForm(deps.Cart, logg))
		r.Post("/make-order", controllers.MakeOrder(deps.Checkout, deps.Cart, deps.Redis, flashTTL, logg))

		r.With(middleware.RequireCustomer(logg)).Get("/profile/", controllers.Profile(deps.Customers, deps.Orders, logg))
		r.With(middleware.RequireCustomer(logg)).Get("/orders/{id}/", controllers.OrderDetail(deps.Orders, logg))

		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login/", controllers.AuthLogin(deps.Auth, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/registration/", controllers.AuthRegister(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh/", controllers.AuthRefresh(deps.Auth, cfg.JWT, logg))
		r.Post("/logout/", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	return r
}
