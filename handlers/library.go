package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"cinetrack/models"
	"cinetrack/services/library"
	"cinetrack/services/omdb"

	"github.com/gorilla/mux"
)

type libraryService interface {
	AddFromSearch(ctx context.Context, imdbID string, status models.WatchStatus) (*models.LibraryItem, error)
	QuickAdd(ctx context.Context, hit omdb.SearchHit) (*models.LibraryItem, error)
	AddManual(params library.ManualAddParams) (*models.LibraryItem, error)
	SaveProgress(id int64, update models.EntryUpdate) error
	List(status models.WatchStatus) ([]models.LibraryItem, error)
	Remove(id int64) error
	Stats() (*models.Stats, error)
}

var _ libraryService = (*library.Service)(nil)

// LibraryHandler exposes the user's tracked library.
type LibraryHandler struct {
	Service libraryService
}

func NewLibraryHandler(s libraryService) *LibraryHandler {
	return &LibraryHandler{Service: s}
}

// addRequest selects one of the three add flows: by imdb id (with detail
// fetch), by raw search hit, or a fully manual title.
type addRequest struct {
	IMDBID string                   `json:"imdbId"`
	Status models.WatchStatus       `json:"status"`
	Hit    *omdb.SearchHit          `json:"hit"`
	Manual *library.ManualAddParams `json:"manual"`
}

// Add puts a title into the library.
func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var request addRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var (
		item *models.LibraryItem
		err  error
	)
	switch {
	case request.Manual != nil:
		item, err = h.Service.AddManual(*request.Manual)
	case request.Hit != nil:
		item, err = h.Service.QuickAdd(r.Context(), *request.Hit)
	case request.IMDBID != "":
		item, err = h.Service.AddFromSearch(r.Context(), request.IMDBID, request.Status)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "one of imdbId, hit or manual is required"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// List returns the library joined with its catalog data, newest first,
// optionally filtered with ?status=.
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(models.WatchStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Items []models.LibraryItem `json:"items"`
	}{Items: items})
}

// Update applies a partial update to one tracking entry.
func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var update models.EntryUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Service.SaveProgress(id, update); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a tracking entry. Unknown ids are silently fine.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Service.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the library aggregates.
func (h *LibraryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func entryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
