package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body: one entry per field-validation
// failure, or a single entry for a business-rule or status failure.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// JSONOK writes a 200 with the given body.
func JSONOK(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusOK, body)
}

// JSONCreated writes a 201 with the given body.
func JSONCreated(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusCreated, body)
}

// JSONNoContent writes a 204 with no body.
func JSONNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONErrors writes the error envelope with the given status code.
func JSONErrors(w http.ResponseWriter, statusCode int, messages ...string) {
	writeJSON(w, statusCode, ErrorResponse{Errors: messages})
}

// JSONErrorList is JSONErrors for an already-collected message slice.
func JSONErrorList(w http.ResponseWriter, statusCode int, messages []string) {
	writeJSON(w, statusCode, ErrorResponse{Errors: messages})
}
