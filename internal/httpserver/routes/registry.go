package routes

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

type (
	// Registrar mounts one group of routes.
	Registrar func(r chi.Router, d deps.Deps)
	// Guard builds a middleware from the dependencies once the router is assembled.
	Guard func(d deps.Deps) func(http.Handler) http.Handler
)

type group struct {
	name   string
	reg    Registrar
	guards []Guard
}

var groups []group

// Register adds a named route group. Guards wrap every route of the group.
// Called from init, so registration order follows file order within the package.
func Register(name string, reg Registrar, guards ...Guard) {
	groups = append(groups, group{name: name, reg: reg, guards: guards})
}

// Names lists registered groups in registration order.
func Names() []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.name)
	}
	return slices.Clip(names)
}

// RegisterAll mounts every registered group on r.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		target := r
		if len(g.guards) > 0 {
			mws := make([]func(http.Handler) http.Handler, 0, len(g.guards))
			for _, guard := range g.guards {
				mws = append(mws, guard(d))
			}
			target = r.With(mws...)
		}
		g.reg(target, d)
		d.Logger.Debug("routes mounted", logger.String("group", g.name))
	}
}

// operational restricts a group to the configured CIDRs.
func operational(d deps.Deps) func(http.Handler) http.Handler {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
