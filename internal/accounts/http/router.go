package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openreel/openreel/internal/accounts/media"
	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/internal/accounts/store"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	cookieSecure bool
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	SessionService *service.SessionService
	Uploader       media.Uploader
}

func NewRouter(
	buildVersion string,
	cookieSecure bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		cookieSecure: cookieSecure,
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware
// chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSessions()
	r.registerSystem()
}

func (r *Router) registerAccounts() {
	authn := httpx.AuthnMiddleware(r.SessionService.AccessVerifier())

	registerHandler := &RegisterHandler{
		AccountService: r.AccountService,
		Uploader:       r.Uploader,
	}
	// Public signup endpoint, strict limit by IP.
	r.Mux.Handle("POST /v1/accounts/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	meHandler := &MeHandler{AccountService: r.AccountService}
	r.Mux.Handle("GET /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(meHandler.HandleGet),
			authn,
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(meHandler.HandleUpdate),
			authn,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	passwordHandler := &ChangePasswordHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/accounts/password",
		httpx.Chain(passwordHandler,
			authn,
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	mediaHandler := &MediaHandler{
		AccountService: r.AccountService,
		Uploader:       r.Uploader,
	}
	r.Mux.Handle("PUT /v1/accounts/me/avatar",
		httpx.Chain(http.HandlerFunc(mediaHandler.HandleAvatar),
			authn,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/accounts/me/cover",
		httpx.Chain(http.HandlerFunc(mediaHandler.HandleCover),
			authn,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	authn := httpx.AuthnMiddleware(r.SessionService.AccessVerifier())

	loginHandler := &LoginHandler{
		SessionService: r.SessionService,
		CookieSecure:   r.cookieSecure,
	}
	// Credential endpoint, strict limit by IP to slow brute force.
	r.Mux.Handle("POST /v1/sessions/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	refreshHandler := &RefreshHandler{
		SessionService: r.SessionService,
		CookieSecure:   r.cookieSecure,
	}
	r.Mux.Handle("POST /v1/sessions/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logoutHandler := &LogoutHandler{
		SessionService: r.SessionService,
		CookieSecure:   r.cookieSecure,
	}
	r.Mux.Handle("POST /v1/sessions/logout",
		httpx.Chain(logoutHandler,
			authn,
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.buildVersion, r.startTime))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
}
