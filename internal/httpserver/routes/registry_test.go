package routes

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store/memory"
)

func TestNamesIncludesEveryGroup(t *testing.T) {
	names := Names()
	for _, want := range []string{"bookmarks", "healthz", "metrics", "readyz"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
}

func TestRegisterAllAppliesOperationalGuard(t *testing.T) {
	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{
		Logger:       logger.NewNop(),
		Bookmarks:    memory.NewStore(),
		AllowedCIDRS: []string{"127.0.0.1/32"},
	})

	tests := []struct {
		path   string
		remote string
		want   int
	}{
		{"/readyz", "127.0.0.1:1234", http.StatusOK},
		{"/readyz", "192.0.2.1:1234", http.StatusForbidden},
		{"/bookmarks", "192.0.2.1:1234", http.StatusOK},
		{"/metrics", "127.0.0.1:1234", http.StatusNotFound}, // no manager, no route
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.RemoteAddr = tt.remote
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s from %s: status = %d, want %d", tt.path, tt.remote, rec.Code, tt.want)
		}
	}
}
