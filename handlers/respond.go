package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinetrack/internal/database"
	"cinetrack/services/library"
	"cinetrack/services/omdb"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the service and client error taxonomy onto HTTP status
// codes. The remote's own message is passed through on rejection so the
// presentation layer can show it verbatim.
func writeError(w http.ResponseWriter, err error) {
	var rejected *omdb.RejectedError

	switch {
	case errors.Is(err, library.ErrAlreadyTracked):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, library.ErrTitleRequired),
		errors.Is(err, library.ErrYearRequired),
		errors.Is(err, library.ErrInvalidStatus),
		errors.Is(err, library.ErrInvalidRating):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, omdb.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &rejected):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: rejected.Message})
	case errors.Is(err, omdb.ErrRemoteUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrNotInitialized):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
