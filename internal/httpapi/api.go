package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"stitchmart.org/internal/auth"
	"stitchmart.org/internal/cart"
	"stitchmart.org/internal/catalog"
	"stitchmart.org/internal/obs"
)

// ReadyProbe reports readiness, pinging the database when one is configured.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config carries everything the HTTP layer needs.
type Config struct {
	ReadyProbe ReadyProbe
	Version    string

	Accounts *auth.Service
	Catalog  *catalog.Service
	Carts    *cart.Service
	Codec    *auth.Codec
	Cookie   auth.CookieOptions

	// FrontendOrigin, when set, is allowed to make credentialed
	// cross-origin requests (the browser storefront).
	FrontendOrigin string

	// Rate limiting knobs; zero values fall back to the defaults below.
	RateBurst     int
	RatePerSecond int
	MaxBodyBytes  int64
}

const (
	defaultRateBurst     = 40
	defaultRatePerSecond = 20
	defaultMaxBodyBytes  = 1 << 20
)

// API is the HTTP layer.
type API struct {
	mux *http.ServeMux
	cfg Config
}

func New(cfg Config) *API {
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = defaultRateBurst
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaultRatePerSecond
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	a := &API{
		mux: http.NewServeMux(),
		cfg: cfg,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/v1/signup", a.handleSignup)
	a.mux.HandleFunc("/v1/signin", a.handleSignin)
	a.mux.HandleFunc("/v1/signout", a.handleSignout)
	a.mux.HandleFunc("/v1/password/request-reset", a.handleRequestReset)
	a.mux.HandleFunc("/v1/password/reset", a.handleResetPassword)

	a.mux.HandleFunc("/v1/me", a.handleMe)
	a.mux.HandleFunc("/v1/users", a.handleUsersCollection)
	a.mux.HandleFunc("/v1/users/", a.handleUserResource)

	a.mux.HandleFunc("/v1/items", a.handleItemsCollection)
	a.mux.HandleFunc("/v1/items/", a.handleItemResource)

	a.mux.HandleFunc("/v1/cart", a.handleCartCollection)
	a.mux.HandleFunc("/v1/cart/", a.handleCartResource)

	a.mux.HandleFunc("/v1/orders", a.handleOrdersCollection)
	a.mux.HandleFunc("/v1/orders/", a.handleOrderResource)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withSession(h)
	h = MaxBodyBytes(h, a.cfg.MaxBodyBytes)
	h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSecond)
	h = CORS(h, a.cfg.FrontendOrigin)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
