// Package api holds the HTTP plumbing shared by the handlers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// Number renders d as a JSON number with no binary floating point step:
// whole values have no fractional part, others keep their exact digits.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// OKResponse writes data as JSON with status 200.
func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

// MessageResponse writes {"message": msg}.
func MessageResponse(w http.ResponseWriter, status int, msg string) {
	JSONResponse(w, status, map[string]string{"message": msg})
}

// ErrorResponse writes {"error": msg}.
func ErrorResponse(w http.ResponseWriter, status int, msg string) {
	JSONResponse(w, status, map[string]string{"error": msg})
}

func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
