package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as an "application/json" response
// with the given status code.
//
// When marshaling fails the response degrades to a plain 500 and the
// wrapped marshal error is returned; nothing of the payload is written.
//
// Returns the number of body bytes written and the marshal error, if any.
//
// Example usage:
//
//	WriteJSON(w, models.UploadResponse{FileID: id}, http.StatusOK)
//	WriteJSON(w, map[string]string{"detail": "logged out"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
