package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
)

// jsonResponse writes data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status
// code. Only the stable error string reaches the client.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

// statusFor maps the workflow error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrFieldIsEmpty),
		errors.Is(err, core.ErrInvalidTransition),
		errors.Is(err, core.ErrOrderDelivered),
		errors.Is(err, core.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrOrderNotFound),
		errors.Is(err, core.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
