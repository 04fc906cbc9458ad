package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"edudash/internal/auth"
	"edudash/internal/middleware"
)

// CookieSettings holds the resolved attributes of the session cookie.
type CookieSettings struct {
	SameSite http.SameSite
	Secure   bool
	MaxAge   time.Duration
}

// ParseSameSite maps a normalized samesite string onto the http constant.
func ParseSameSite(value string) http.SameSite {
	switch value {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	sessions *auth.Sessions
	roster   []auth.Credential
	cookie   CookieSettings
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *auth.Sessions, roster []auth.Credential, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{sessions: sessions, roster: roster, cookie: cookie}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks the submitted credentials against the roster and, on
// success, issues the session cookie.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "error": "Missing credentials"})
		return nil
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	if username == "" || password == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "error": "Missing credentials"})
		return nil
	}

	if len(h.roster) == 0 {
		middleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"ok": false, "error": "Developer credentials are not configured"})
		return nil
	}

	if !auth.Match(h.roster, username, password) {
		middleware.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{"ok": false, "error": "Invalid credentials"})
		return nil
	}

	token, err := h.sessions.Sign(username)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to create session", Code: http.StatusInternalServerError}
	}

	http.SetCookie(w, h.sessionCookie(token, h.cookie.MaxAge))
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "admin": true})
	return nil
}

// handleLogout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	cookie := h.sessionCookie("", -time.Second)
	http.SetCookie(w, cookie)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	return nil
}

// handleSession reports whether the request carries a valid admin session.
func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	user := middleware.GetUserInfo(r.Context())
	authenticated := user != nil && user.Role == auth.RoleAdmin
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{
		"authenticated": authenticated,
		"admin":         authenticated,
	})
	return nil
}

func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: h.cookie.SameSite,
		Secure:   h.cookie.Secure,
	}
}
