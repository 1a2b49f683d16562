package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse - пишет data в JSON с указанным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError - пишет ошибку в едином формате {"error": "..."}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, map[string]string{"error": message})
}
