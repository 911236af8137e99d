package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/build"
	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/store"
	"github.com/joestump/dexview/web"
)

// DetailSource fetches detail records for the direct detail route and the
// favorites view.
type DetailSource interface {
	FetchDetailByID(ctx context.Context, id int) (*catalog.Detail, error)
}

// Deps holds all dependencies required to build the router.
type Deps struct {
	Catalog        *listing.Catalog
	Favorites      *store.FavoritesStore
	Loader         *detail.Loader
	Details        DetailSource
	PageSize       int
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter assembles the full chi router: middleware, /health, /metrics, the
// placeholder artwork and the JSON API under /api/v1.
func NewRouter(deps Deps) http.Handler {
	log := logging.OrNop(deps.Logger)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, build.Current())
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get(catalog.PlaceholderImage, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, web.StaticFS, "static"+catalog.PlaceholderImage)
	})

	r.Mount("/api/v1", NewAPIRouter(deps))
	return r
}

// NewAPIRouter creates a chi sub-router for /api/v1. All routes return
// application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)

	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	log := logging.OrNop(deps.Logger)

	registerPokemonRoutes(r, &pokemonAPIHandler{
		catalog: deps.Catalog, favorites: deps.Favorites, details: deps.Details, pageSize: pageSize, log: log,
	})
	registerFavoritesRoutes(r, &favoritesAPIHandler{
		favorites: deps.Favorites, details: deps.Details, pageSize: pageSize, log: log,
	})
	registerDetailRoutes(r, &detailAPIHandler{loader: deps.Loader, favorites: deps.Favorites})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	})
	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
