package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	BookmarksLoaded *int   `json:"bookmarks_loaded,omitempty"`
	LastMutation    string `json:"last_mutation,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Source          string `json:"source,omitempty"`
}

type infraResponse struct {
	Components map[string]componentStatus `json:"components"`
}

// mutationReporter is implemented by stores that track their last write.
type mutationReporter interface {
	LastMutation() time.Time
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Bookmarks.Count()

		lastMutation := "never"
		if mr, ok := d.Bookmarks.(mutationReporter); ok {
			if t := mr.LastMutation(); !t.IsZero() {
				lastMutation = t.Format("2006-01-02 15:04:05")
			}
		}

		seedSource := d.SeedSource
		if seedSource == "" {
			seedSource = "none"
		}

		components := map[string]componentStatus{
			"store": {
				OK:              true,
				BookmarksLoaded: &count,
				LastMutation:    lastMutation,
				Mode:            "in-memory",
			},
			"seed": {
				OK:     true,
				Source: seedSource,
			},
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, infraResponse{Components: components})
	}
}
