package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrirent-backend/internal/config"
	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/service"
)

// Session is the signed-in user, resolved once per request by the Gate.
// Profile is nil only on routes whose rule sets ProfileOptional.
type Session struct {
	UserID  string
	Email   string
	Role    domain.Role
	Profile *domain.Profile
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by the Gate, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// Gate authenticates requests and enforces config.RouteRules.
type Gate struct {
	auth         service.AuthService
	cookieName   string
	cookieSecure bool
	serviceKey   string
}

func NewGate(auth service.AuthService, cookieName string, cookieSecure bool, serviceKey string) *Gate {
	return &Gate{auth: auth, cookieName: cookieName, cookieSecure: cookieSecure, serviceKey: serviceKey}
}

func (g *Gate) extractToken(r *http.Request) string {
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// resolve validates the token and loads the profile. Any failure means no
// session, except a profile miss on a ProfileOptional route.
func (g *Gate) resolve(r *http.Request, rule config.RouteRule) *Session {
	token := g.extractToken(r)
	if token == "" {
		return nil
	}
	claims, err := g.auth.Authenticate(r.Context(), token)
	if err != nil {
		logger.Debug("session token rejected", "path", r.URL.Path, "error", err)
		return nil
	}
	sess := &Session{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
	profile, err := g.auth.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if rule.ProfileOptional && errors.Is(err, domain.ErrNotFound) {
			logger.Debug("session profile not readable yet", "user_id", claims.UserID)
			return sess
		}
		logger.Warn("session profile lookup failed", "user_id", claims.UserID, "error", err)
		return nil
	}
	sess.Role = profile.Role
	sess.Profile = profile
	return sess
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule := config.RuleFor(r.URL.Path)

		if rule.Level == config.AccessService {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				key = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if !keyMatches(key, g.serviceKey) {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "Service key required")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		sess := g.resolve(r, rule)
		var role domain.Role
		if sess != nil {
			role = sess.Role
			r = r.WithContext(WithSession(r.Context(), sess))
		}

		decision := config.Authorize(rule, sess != nil, role)
		if !decision.Allowed {
			target := decision.Redirect
			if decision.PreserveTarget {
				target += "?" + url.Values{"redirect": {r.URL.RequestURI()}}.Encode()
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   g.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Gate) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirect accepts only local absolute paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return ""
	}
	return target
}
