package http

import (
	"net/http"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
)

// Health reports process and database status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "database": "ok"}
	status := http.StatusOK
	if h.DB != nil {
		if err := h.DB.Ping(r.Context()); err != nil {
			logger.Warn("health check: database unreachable", "error", err)
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, resp)
}

// ProvisionUser creates an account of any role. Service key only.
func (h *Handler) ProvisionUser(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		WriteError(w, http.StatusBadRequest, ErrValidation, "Invalid role")
		return
	}
	profile, err := h.Auth.ProvisionUser(r.Context(), req.input(role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"profile": profile})
}
