package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthHandler reports process liveness.
type HealthHandler struct{}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
