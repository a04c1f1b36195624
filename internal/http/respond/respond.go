// Package respond writes JSON bodies and maps service errors to HTTP
// statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/apperr"
)

// JSON writes data as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes {"message": msg} with status 200.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, map[string]string{"message": msg})
}

// ErrorMessage writes {"error": msg} with the given status code.
func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Error classifies err: validation failures are 400 with their own message,
// not-found errors 404, and anything else 500 with a fixed message while the
// cause is logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsValidation(err):
		ErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		ErrorMessage(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		ErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// Decode reads a JSON body into dst. Failures are reported as 400 and false
// is returned.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrorMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// ID parses the {id} URL parameter. An invalid id is reported as 400 and
// false is returned.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ErrorMessage(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// Amount converts an optional decoded amount to the float the services take.
// Values beyond float64 range come back as infinities for the services to
// reject.
func Amount(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}

	return new(d.InexactFloat64())
}
