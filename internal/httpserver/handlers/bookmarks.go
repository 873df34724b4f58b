package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/metrics"
)

const maxBodyBytes = 1 << 20

type createBookmarkRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// ListBookmarks serves GET /bookmarks with optional url/description filters.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := domain.Filter{
			URL:         q.Get("url"),
			Description: q.Get("description"),
		}

		operation := "find"
		if filter.IsEmpty() {
			operation = "list"
		}
		bookmarks := d.Bookmarks.Find(filter)
		if bookmarks == nil {
			bookmarks = []domain.Bookmark{}
		}
		d.Metrics.ObserveOperation(operation, metrics.ResultOK)

		d.Logger.Debug("listed bookmarks",
			logger.String("url_filter", filter.URL),
			logger.String("description_filter", filter.Description),
			logger.Int("count", len(bookmarks)))

		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// GetBookmark serves GET /bookmarks/{id}. Unknown ids get 404 with an empty body.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		bookmark, ok := d.Bookmarks.FindByID(id)
		if !ok {
			d.Metrics.ObserveOperation("get", metrics.ResultNotFound)
			d.Logger.Debug("bookmark not found", logger.String("bookmark_id", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}

		d.Metrics.ObserveOperation("get", metrics.ResultOK)
		writeJSON(w, http.StatusOK, bookmark)
	}
}

// CreateBookmark serves POST /bookmarks.
// Fields are stored as given; only a body that is not a JSON object is rejected.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := decodeBody(w, r, &req); err != nil {
			d.Metrics.ObserveOperation("create", metrics.ResultInvalid)
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}

		bookmark := d.Bookmarks.Create(req.URL, req.Description)
		d.Metrics.ObserveOperation("create", metrics.ResultOK)

		d.Logger.Info("bookmark created",
			logger.String("bookmark_id", bookmark.ID),
			logger.String("url", bookmark.URL))

		writeJSON(w, http.StatusCreated, bookmark)
	}
}

// DeleteBookmark serves DELETE /bookmarks/{id}. Deleting an unknown id is a no-op.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if d.Bookmarks.Delete(id) {
			d.Metrics.ObserveOperation("delete", metrics.ResultOK)
			d.Logger.Info("bookmark deleted", logger.String("bookmark_id", id))
		} else {
			d.Metrics.ObserveOperation("delete", metrics.ResultNotFound)
			d.Logger.Debug("delete of unknown bookmark ignored", logger.String("bookmark_id", id))
		}

		w.WriteHeader(http.StatusOK)
	}
}

// UpdateBookmarkDescription serves PATCH /bookmarks/{id}/description.
func UpdateBookmarkDescription(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateDescriptionRequest
		if err := decodeBody(w, r, &req); err != nil {
			d.Metrics.ObserveOperation("update_description", metrics.ResultInvalid)
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}

		bookmark, ok := d.Bookmarks.UpdateDescription(id, req.Description)
		if !ok {
			d.Metrics.ObserveOperation("update_description", metrics.ResultNotFound)
			d.Logger.Debug("bookmark not found for update", logger.String("bookmark_id", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}

		d.Metrics.ObserveOperation("update_description", metrics.ResultOK)
		d.Logger.Info("bookmark description updated", logger.String("bookmark_id", id))

		writeJSON(w, http.StatusOK, bookmark)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
