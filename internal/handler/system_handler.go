package handler

import (
	"log/slog"
	"net/http"
)

// SystemHandler serves the OpenAPI document and the health probe.
type SystemHandler struct {
	openAPIPath string
	logger      *slog.Logger
}

func NewSystemHandler(openAPIPath string, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{openAPIPath: openAPIPath, logger: logger}
}

// OpenAPI handles GET /openapi.json.
func (h *SystemHandler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, h.openAPIPath)
}

// Healthz handles GET /healthz.
func (h *SystemHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
