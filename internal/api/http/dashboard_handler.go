package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agrirent-backend/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	d, err := h.Dashboards.OwnerDashboard(r.Context(), sess.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":   sess.Profile,
		"bookings":  nonNil(d.Bookings),
		"equipment": nonNil(d.Equipment),
	})
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.Dashboards.AdminStats(r.Context())
	if stats.RecentUsers == nil {
		stats.RecentUsers = []domain.Profile{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// ExportBookings downloads every booking as an XLSX workbook.
func (h *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Reports.ExportBookings(r.Context(), &buf); err != nil {
		writeServiceError(w, r, err)
		return
	}
	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
