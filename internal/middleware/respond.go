package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the same error envelope the handlers use, so
// middleware rejections look no different to a client.
func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   kind,
		"message": message,
	})
}
