package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
	"github.com/pribylovaa/comment-thread/internal/transport/http/handlers"
	"github.com/pribylovaa/comment-thread/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Ready — готовность для /healthz; nil — всегда готов.
	Ready func() bool
}

// NewRouter собирает http.Handler: служебные эндпоинты и REST-зеркало /v1.
func NewRouter(api threadv1.ThreadServiceServer, opts Options) http.Handler {
	root := chi.NewRouter()

	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if opts.Ready == nil || opts.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	root.Handle("/metrics", promhttp.Handler())

	h := handlers.New(api)

	root.Route("/v1", func(r chi.Router) {
		// Middleware (внешний -> внутренний).
		r.Use(
			middleware.Recover(),
			middleware.RequestID(), // до логирования
			middleware.Logging(opts.Logger),
			middleware.Viewer(),
			middleware.Timeout(opts.Timeout),
		)
		registerRoutes(r, h)
	})

	return root
}

// registerRoutes — единая точка регистрации REST-эндпоинтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// pages
	r.Get("/pages/{page_id}/thread", h.GetThread)
	r.Get("/pages/{page_id}/comments", h.ListRootComments)

	// comments
	r.Post("/comments", h.CreateComment)
	r.Get("/comments/{id}", h.GetCommentByID)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Get("/comments/{id}/replies", h.ListReplies)
	r.Post("/comments/{id}/like", h.ToggleLike)

	// viewers
	r.Get("/viewer", h.CurrentViewer)
	r.Put("/viewers/{id}", h.SaveViewer)
	r.Delete("/viewers/{id}", h.DeleteViewer)
}
