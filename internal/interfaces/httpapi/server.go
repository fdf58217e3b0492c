package httpapi

import (
	"net/http"

	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

// RouterConfig carries the collaborators of NewRouter. Metrics and
// MetricsHandler are optional.
type RouterConfig struct {
	Handler            *Handler
	Verifier           TokenVerifier
	AdminChecker       AdminChecker
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	Metrics            RequestObserver
	MetricsHandler     http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, cfg.Handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerPublicRoutes(mux, cfg.Handler, cfg.Verifier)
	registerAuthorizedRoutes(mux, cfg.Handler, cfg.Verifier)
	registerAdminRoutes(mux, cfg.Handler, cfg.Verifier, cfg.AdminChecker)

	var handler http.Handler = recoverPanic(logger, mux)
	handler = Language(handler)
	handler = CORS(cfg.CORSAllowedOrigins, handler)
	handler = Metrics(cfg.Metrics, mux, handler)
	handler = RequestLogging(logger, handler)
	return RequestTracing(handler)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
