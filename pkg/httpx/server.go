package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/secure"
)

const (
	defaultBodyLimit      = 1 << 20 // 1 MB
	defaultHandlerTimeout = 30 * time.Second

	// swaggerPrefix is served with a CSP that allows the UI's inline scripts.
	swaggerPrefix = "/swagger/"
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// "*" allows any origin, which the public course site relies on.
	CORSAllowedOrigins string
	// BodyLimit caps request bodies. Zero means 1 MB.
	BodyLimit int64
	// HandlerTimeout bounds each request. Zero means 30s.
	HandlerTimeout time.Duration
}

// Middlewares are the process-specific layers NewRouter installs around the
// chi built-ins. A nil field is skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Otel     func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard middleware stack.
//
// Order, outermost first: recovery, sentry, request id, otel, request log,
// real ip, trailing-slash strip, CORS, body limit, timeout, security headers.
// Unknown routes and methods answer with a JSON error body.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaultBodyLimit
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = defaultHandlerTimeout
	}

	stack := make([]func(http.Handler) http.Handler, 0, 11)
	for _, m := range []func(http.Handler) http.Handler{mw.Recovery, mw.Sentry} {
		if m != nil {
			stack = append(stack, m)
		}
	}
	stack = append(stack, middleware.RequestID)
	for _, m := range []func(http.Handler) http.Handler{mw.Otel, mw.Logger} {
		if m != nil {
			stack = append(stack, m)
		}
	}
	stack = append(stack,
		middleware.RealIP,
		middleware.StripSlashes,
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.BodyLimit),
		middleware.Timeout(cfg.HandlerTimeout),
		SecurityHeaders(cfg.IsDevelopment),
	)

	r := chi.NewRouter()
	r.Use(stack...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return r
}

// SecurityHeaders sets HSTS, frame, sniffing and referrer headers on every
// response. API routes get a deny-all CSP; the Swagger UI gets one that
// permits its own inline assets.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	base := secure.Options{
		STSSeconds:           63072000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		PermissionsPolicy:    "geolocation=(), microphone=(), camera=(), usb=()",
		IsDevelopment:        isDevelopment,
	}

	api := base
	api.ContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	docs := base
	docs.ContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

	apiSec, docsSec := secure.New(api), secure.New(docs)

	return func(next http.Handler) http.Handler {
		apiH, docsH := apiSec.Handler(next), docsSec.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, swaggerPrefix) {
				docsH.ServeHTTP(w, r)
				return
			}
			apiH.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware returns a CORS handler restricted to the given allowed origins.
// allowedOrigins is a comma-separated list (e.g. "https://courses.example.com,http://localhost:3000").
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// parseOrigins splits a comma-separated origins string, trimming spaces.
// An empty list means any origin.
func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the request body at maxBytes. Reads past the limit
// fail with *http.MaxBytesError.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server for addr. WriteTimeout sits above the
// handler timeout so the timeout middleware can still write its 503.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      defaultHandlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
