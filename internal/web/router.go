package web

import (
	"log/slog"
	"net/http"

	"github.com/lyricflow/lyricflow/internal/lyrics"
	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/lyricflow/lyricflow/internal/web/handlers"
	"github.com/lyricflow/lyricflow/internal/web/middleware"
)

type Router struct {
	romanizer *romanize.Romanizer
	providers []lyrics.Provider
	log       *slog.Logger
}

func NewRouter(romanizer *romanize.Romanizer, providers []lyrics.Provider, log *slog.Logger) *Router {
	return &Router{
		romanizer: romanizer,
		providers: providers,
		log:       log,
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	romanizeHandler := handlers.NewRomanizeHandler(r.romanizer, r.log)
	lyricsHandler := handlers.NewLyricsHandler(r.providers, r.log)

	rateLimiter := middleware.NewRateLimiter(30, 60)

	mux.Handle("POST /api/v1/romanize",
		middleware.Chain(
			http.HandlerFunc(romanizeHandler.Romanize),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("GET /api/v1/lyrics/search",
		middleware.Chain(
			http.HandlerFunc(lyricsHandler.Search),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=60, max-age=30"),
		),
	)

	mux.Handle("GET /health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))

	return middleware.CORS(mux)
}
