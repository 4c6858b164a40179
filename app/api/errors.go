package api

import (
	"errors"
	"net/http"

	"github.com/mytheresa/inventory-notes/app/obs"
	"github.com/mytheresa/inventory-notes/models"
)

// StatusFor maps domain errors to HTTP status codes. Unclassified errors
// are store faults and map to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrLengthMismatch),
		errors.Is(err, models.ErrInvalidPatch),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrProductExists):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrNoteNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError answers with the status for err. Internal errors are logged and
// their details are not exposed to the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		obs.Logger.Error("request_failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		ErrorResponse(w, status, "internal error")
		return
	}
	ErrorResponse(w, status, err.Error())
}
