package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
)

func init() { Register("metrics", registerMetrics, operational) }

func registerMetrics(r chi.Router, d deps.Deps) {
	if d.Metrics == nil {
		return
	}
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
}
