package http

import (
	"context"
	"net/http"

	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Pinger reports backend connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires the router to its services.
type Deps struct {
	Auth       service.AuthService
	Catalog    service.CatalogService
	Bookings   service.BookingService
	Dashboards service.DashboardService
	Reports    service.ReportService
	Store      storage.ObjectStore
	DB         Pinger

	CookieName     string
	CookieSecure   bool
	AnonKey        string
	ServiceKey     string
	MaxUploadBytes int64
}

type Handler struct {
	Deps
	gate *Gate
}

// NewRouter creates the HTTP handler with all routes. The middleware chain
// wraps the whole router so unmatched paths and methods are gated too.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		Deps: d,
		gate: NewGate(d.Auth, d.CookieName, d.CookieSecure, d.ServiceKey),
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, ErrNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, ErrBadRequest, "Method not allowed")
	})

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/equipment", h.BrowseEquipment).Methods(http.MethodGet)
	r.HandleFunc("/uploads/{key:.+}", h.ServeUpload).Methods(http.MethodGet)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/admin/login", h.AdminLogin).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/signup", h.SignupRoles).Methods(http.MethodGet)
	auth.HandleFunc("/signup/farmer", h.SignupFarmer).Methods(http.MethodPost)
	auth.HandleFunc("/signup/owner", h.SignupOwner).Methods(http.MethodPost)
	auth.HandleFunc("/signup/success", h.SignupSuccess).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/bookings", h.MyBookings).Methods(http.MethodGet)
	r.HandleFunc("/booking/checkout", h.CheckoutQuote).Methods(http.MethodGet)
	r.HandleFunc("/booking/checkout", h.CheckoutSubmit).Methods(http.MethodPost)
	r.HandleFunc("/booking/success", h.BookingSuccess).Methods(http.MethodGet)

	owner := r.PathPrefix("/owner").Subrouter()
	owner.HandleFunc("/dashboard", h.OwnerDashboard).Methods(http.MethodGet)
	owner.HandleFunc("/bookings/{id}/paid", h.MarkPaid).Methods(http.MethodPost)
	owner.HandleFunc("/equipment/{id}/availability", h.ToggleAvailability).Methods(http.MethodPost)
	owner.HandleFunc("/equipment/add", h.AddEquipmentForm).Methods(http.MethodGet)
	owner.HandleFunc("/equipment", h.AddEquipment).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/dashboard", h.AdminDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/export", h.ExportBookings).Methods(http.MethodGet)

	svc := r.PathPrefix("/service").Subrouter()
	svc.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	svc.HandleFunc("/users", h.ProvisionUser).Methods(http.MethodPost)

	var handler http.Handler = r
	handler = h.gate.Middleware(handler)
	handler = APIKey(d.AnonKey, d.ServiceKey)(handler)
	handler = ErrorRecovery(handler)
	handler = Logging(handler)
	return handler
}

// Index describes the landing page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"name":       "AgriRent",
		"tagline":    "Rent farm equipment from owners near you",
		"categories": h.Catalog.UploadLimits().Categories,
		"links": map[string]string{
			"browse": "/equipment",
			"login":  "/auth/login",
			"signup": "/auth/signup",
		},
	}
	if sess, ok := SessionFromContext(r.Context()); ok {
		resp["signed_in"] = true
		resp["role"] = sess.Role
		resp["dashboard"] = sess.Role.LandingPath()
	}
	writeJSON(w, http.StatusOK, resp)
}
