// Package respond writes the API's JSON response bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes payload as a JSON body with the given status code.
func JSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Error writes the error body shape shared by every endpoint:
// {"message": <text>}.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, errorBody{Message: message})
}
