// internal/httpx/respond.go
package httpx

import (
	"encoding/json"
	"net/http"
)

// Success writes the {"Success": ...} envelope used by mutating endpoints.
func Success(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, map[string]string{"Success": msg})
}

// Error writes the {"Error": ...} envelope with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"Error": msg})
}

// JSON writes v as a JSON response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
