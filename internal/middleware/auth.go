package middleware

import (
	"net/http"

	"edudash/internal/auth"
)

// SessionVerifier verifies a raw session token into claims. Satisfied by
// *auth.Sessions.
type SessionVerifier interface {
	Verify(token string) (*auth.Claims, bool)
}

// Session reads the session cookie, verifies it, and attaches the resulting
// user info to the request context. Requests without a valid cookie pass
// through unauthenticated.
func Session(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(auth.CookieName); err == nil {
				if claims, ok := sessions.Verify(cookie.Value); ok {
					ctx := SetUserInfo(r.Context(), &UserInfo{
						Subject: claims.Subject,
						Role:    claims.Role,
					})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests that do not carry a valid admin session.
// Missing, expired, and tampered sessions are indistinguishable to the
// caller: all answer 401 Unauthorized.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserInfo(r.Context())
		if user == nil || user.Role != auth.RoleAdmin {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
