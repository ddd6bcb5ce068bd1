package handlers

import (
	"context"
	"net/http"

	"cinetrack/services/omdb"

	"github.com/gorilla/mux"
)

type searchClient interface {
	Search(ctx context.Context, query string) ([]omdb.SearchHit, error)
	FetchDetails(ctx context.Context, imdbID string) (*omdb.Detail, error)
}

var _ searchClient = (*omdb.Client)(nil)

// SearchHandler exposes catalog lookups against the remote search API.
type SearchHandler struct {
	Client searchClient
}

func NewSearchHandler(c searchClient) *SearchHandler {
	return &SearchHandler{Client: c}
}

// Search runs a free-text title search. A blank query is a valid request
// that returns an empty result set.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	hits, err := h.Client.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Results []omdb.SearchHit `json:"results"`
	}{Results: hits})
}

// Details fetches full metadata for one imdb id, already mapped into the
// catalog shape (remote sentinels translated to absent fields).
func (h *SearchHandler) Details(w http.ResponseWriter, r *http.Request) {
	imdbID := mux.Vars(r)["imdbID"]

	detail, err := h.Client.FetchDetails(r.Context(), imdbID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail.ToMovie())
}
