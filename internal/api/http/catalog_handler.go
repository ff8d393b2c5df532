package http

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"

	"github.com/gorilla/mux"
)

// BrowseEquipment lists available equipment, newest first, filtered by
// q, location and category.
func (h *Handler) BrowseEquipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EquipmentFilter{
		Query:    q.Get("q"),
		Location: q.Get("location"),
	}
	if c := q.Get("category"); c != "" && !strings.EqualFold(c, "all") {
		category, ok := domain.ParseCategory(c)
		if !ok {
			WriteError(w, http.StatusBadRequest, ErrValidation, "Unknown category")
			return
		}
		filter.Category = category
	}

	items, err := h.Catalog.Browse(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"equipment":  nonNil(items),
		"count":      len(items),
		"categories": domain.Categories,
	})
}

func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	items, err := h.Catalog.ToggleAvailability(r.Context(), sess.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"equipment": nonNil(items)})
}

func (h *Handler) AddEquipmentForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.UploadLimits())
}

// parseCents reads a decimal currency amount such as "150" or "150.50".
func parseCents(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewValidationError("price_per_day", "Price per day must be a number")
	}
	if v*100 > float64(domain.MaxPricePerDayCents) {
		return 0, domain.NewValidationError("price_per_day", "Price per day must be at most 1000000.00")
	}
	return int64(math.Round(v * 100)), nil
}

// multipartOverhead is the allowance for form fields on top of the image.
const multipartOverhead = 1 << 20

// AddEquipment handles the multipart equipment form: fields plus an "image" file.
func (h *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.MaxUploadBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, ErrValidation,
				fmt.Sprintf("Image must be smaller than %dMB", h.MaxUploadBytes>>20))
			return
		}
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "Invalid form submission")
		return
	}
	defer r.MultipartForm.RemoveAll()

	price, err := parseCents(r.FormValue("price_per_day"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	in := service.NewEquipmentInput{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Category:         r.FormValue("category"),
		PricePerDayCents: price,
		Location:         r.FormValue("location"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		in.Image = &service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "Invalid image upload")
		return
	}

	e, err := h.Catalog.AddEquipment(r.Context(), sess.UserID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"equipment": e,
		"redirect":  "/owner/dashboard",
	})
}

// ServeUpload streams a stored object.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	rc, contentType, err := h.Store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			WriteError(w, http.StatusNotFound, ErrNotFound, "File not found")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("failed to stream upload", "key", key, "error", err)
	}
}
