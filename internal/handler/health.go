package handler

import (
	"net/http"

	"edudash/internal/middleware"
)

// HealthHandler answers deployment liveness probes.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
