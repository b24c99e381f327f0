package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/lending"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// lendingError maps a lending failure to its HTTP status.
func lendingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lending.ErrUnauthenticated):
		jsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, lending.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lending.ErrNotBorrower):
		jsonError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, lending.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lending.ErrItemUnavailable), errors.Is(err, lending.ErrItemNotBorrowed):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, lending.ErrStoreUnavailable):
		slog.Error("item store failed", "error", err)
		jsonError(w, http.StatusServiceUnavailable, lending.ErrStoreUnavailable.Error())
	default:
		slog.Error("unexpected lending error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
