package utils

import (
	"net/http"

	"cinetrack/handlers"

	"github.com/gorilla/mux"
)

// CORS middleware to allow cross-origin requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter constructs the mux router with all API routes.
func NewRouter(search *handlers.SearchHandler, lib *handlers.LibraryHandler) *mux.Router {
	r := mux.NewRouter()

	// Add CORS middleware
	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", search.Search).Methods(http.MethodGet)
	api.HandleFunc("/search/{imdbID}", search.Details).Methods(http.MethodGet)
	api.HandleFunc("/library", lib.Add).Methods(http.MethodPost)
	api.HandleFunc("/library", lib.List).Methods(http.MethodGet)
	api.HandleFunc("/library/entries/{id}", lib.Update).Methods(http.MethodPatch)
	api.HandleFunc("/library/entries/{id}", lib.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/stats", lib.Stats).Methods(http.MethodGet)

	return r
}
