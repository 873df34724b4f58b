package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	// One limiter shared by every write route.
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.RateLimitBurst,
		RefillPerMin: d.RateLimitRefillPerMin,
		MaxClients:   10000,
		TrustProxy:   d.TrustProxy,
		OnThrottle:   func(r *http.Request) { d.Metrics.ObserveThrottled(r.Method) },
	}, d.Logger)

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/", handlers.ListBookmarks(d))
		r.Get("/{id}", handlers.GetBookmark(d))

		r.With(limit).Post("/", handlers.CreateBookmark(d))
		r.With(limit).Delete("/{id}", handlers.DeleteBookmark(d))
		r.With(limit).Patch("/{id}/description", handlers.UpdateBookmarkDescription(d))
	})
}
