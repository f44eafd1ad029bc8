package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dkarthick-works/sudden/src/logger"
)

// GenericResponse is the uniform envelope every endpoint responds with.
// Exactly one of Data and Error is set.
type GenericResponse struct {
	Data    any     `json:"data"`
	Message string  `json:"message"`
	Error   *string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GenericResponse{Data: data, Message: message}); err != nil {
		logger.L.Error("Failed to encode JSON response", "error", err)
	}
}

func sendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GenericResponse{Error: &message}); err != nil {
		logger.L.Error("Failed to encode JSON error response", "error", err)
	}
}
