package http

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

type checkoutRequest struct {
	EquipmentID string `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CheckoutQuote prices a prospective booking. Without dates it quotes
// today through tomorrow.
func (h *Handler) CheckoutQuote(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	q := r.URL.Query()
	checkout, err := h.Bookings.Quote(r.Context(), sess.UserID, q.Get("equipment_id"), q.Get("start"), q.Get("end"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *Handler) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	b, err := h.Bookings.Create(r.Context(), sess.UserID, req.EquipmentID, req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":  b,
		"redirect": "/booking/success?" + url.Values{"id": {b.ID}}.Encode(),
	})
}

func (h *Handler) BookingSuccess(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, ErrValidation, "Booking id is required")
		return
	}
	b, err := h.Bookings.Get(r.Context(), sess.UserID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": b})
}

// MyBookings lists the caller's bookings as renter, newest first.
func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	list, err := h.Bookings.ListForRenter(r.Context(), sess.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":  sess.Profile,
		"bookings": nonNil(list),
	})
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	list, err := h.Bookings.MarkPaid(r.Context(), sess.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": nonNil(list)})
}
