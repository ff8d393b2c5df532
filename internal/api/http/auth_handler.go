package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/service"
)

// Login error categories returned in the "error" field.
const (
	loginErrInvalid = "invalid"
	loginErrNetwork = "network"
	loginErrGeneric = "generic"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *domain.Profile `json:"profile"`
	Redirect  string          `json:"redirect"`
}

// categorizeLoginError buckets a sign-in failure by its message text.
func categorizeLoginError(err error) (code, message string) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid"):
		return loginErrInvalid, "Invalid email or password"
	case strings.Contains(msg, "network"), strings.Contains(msg, "fetch"):
		return loginErrNetwork, "Network error. Please check your connection and try again."
	default:
		return loginErrGeneric, "Something went wrong. Please try again."
	}
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) (*service.SignInResult, bool) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, ErrValidation, "Email and password are required")
		return nil, false
	}

	res, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		code, message := categorizeLoginError(err)
		if code != loginErrInvalid {
			logger.ErrorContext(r.Context(), "sign in failed", "error", err)
		}
		WriteError(w, http.StatusUnauthorized, code, message)
		return nil, false
	}
	return res, true
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	res, ok := h.signIn(w, r)
	if !ok {
		return
	}
	h.gate.setSessionCookie(w, res.Token, res.ExpiresAt)

	redirect := safeRedirect(r.URL.Query().Get("redirect"))
	if redirect == "" {
		redirect = res.Profile.Role.LandingPath()
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Profile:   res.Profile,
		Redirect:  redirect,
	})
}

// AdminLogin signs in only admins; anyone else is signed straight back out.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	res, ok := h.signIn(w, r)
	if !ok {
		return
	}
	if res.Profile.Role != domain.RoleAdmin {
		h.gate.clearSessionCookie(w)
		WriteError(w, http.StatusForbidden, ErrAccessDenied, "Access denied. Admin privileges required.")
		return
	}
	h.gate.setSessionCookie(w, res.Token, res.ExpiresAt)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Profile:   res.Profile,
		Redirect:  domain.RoleAdmin.LandingPath(),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.gate.extractToken(r); token != "" {
		if err := h.Auth.SignOut(r.Context(), token); err != nil {
			logger.Warn("sign out failed", "error", err)
		}
	}
	h.gate.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, redirectTo{Redirect: "/auth/login"})
}

// Dashboard sends the caller to their role's landing page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if sess.Profile != nil {
		http.Redirect(w, r, sess.Profile.Role.LandingPath(), http.StatusSeeOther)
		return
	}
	// Freshly signed-up users may not have a readable profile yet.
	profile, err := h.Auth.GetProfileWithRetry(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, profile.Role.LandingPath(), http.StatusSeeOther)
}

type roleOption struct {
	Role        domain.Role `json:"role"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	SignupPath  string      `json:"signup_path"`
}

func (h *Handler) SignupRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"roles": []roleOption{
			{domain.RoleFarmer, "Farmer", "Rent equipment for your farm", "/auth/signup/farmer"},
			{domain.RoleOwner, "Equipment Owner", "List your equipment and earn", "/auth/signup/owner"},
		},
	})
}

type signupRequest struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Phone           string   `json:"phone"`
	FarmName        string   `json:"farm_name"`
	FarmSizeAcres   *float64 `json:"farm_size_acres"`
	FarmLocation    string   `json:"farm_location"`
	CropTypes       string   `json:"crop_types"`
	BusinessName    string   `json:"business_name"`
	PropertyAddress string   `json:"property_address"`
	EquipmentCount  *int32   `json:"equipment_count"`
	ServiceArea     string   `json:"service_area"`
	Role            string   `json:"role,omitempty"`
}

func (req signupRequest) input(role domain.Role) service.SignUpInput {
	return service.SignUpInput{
		Role:            role,
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		FarmName:        req.FarmName,
		FarmSizeAcres:   req.FarmSizeAcres,
		FarmLocation:    req.FarmLocation,
		CropTypes:       req.CropTypes,
		BusinessName:    req.BusinessName,
		PropertyAddress: req.PropertyAddress,
		EquipmentCount:  req.EquipmentCount,
		ServiceArea:     req.ServiceArea,
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, role domain.Role) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	profile, err := h.Auth.SignUp(r.Context(), req.input(role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"profile":  profile,
		"redirect": "/auth/signup/success?" + url.Values{"role": {string(role)}}.Encode(),
	})
}

func (h *Handler) SignupFarmer(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, domain.RoleFarmer)
}

func (h *Handler) SignupOwner(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, domain.RoleOwner)
}

func (h *Handler) SignupSuccess(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.URL.Query().Get("role"))
	if !role.SelfAssignable() {
		role = domain.RoleFarmer
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":     role,
		"message":  "Your account has been created. Please sign in to continue.",
		"redirect": "/auth/login",
	})
}
