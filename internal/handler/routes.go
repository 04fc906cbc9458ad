package handler

import (
	"net/http"

	appmw "edudash/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// maxBodySize bounds request bodies; a full zone document stays well under it.
const maxBodySize = 2 << 20 // 2 MB

// NewRouter creates and configures a new chi router.
func NewRouter(
	authHandler *AuthHandler,
	zoneHandler *ZoneHandler,
	sessionMW func(http.Handler) http.Handler,
	errorMW func(appmw.AppHandler) http.Handler,
	corsOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(maxBodySize))

	corsOptions := cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}
	if len(corsOrigins) == 0 {
		// The original deployment reflected any origin with credentials;
		// without a configured allow-list that behavior is kept.
		corsOptions.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	r.Use(cors.Handler(corsOptions))

	r.Use(sessionMW)

	// Public routes
	r.Method(http.MethodGet, "/health", HealthHandler())
	r.Method(http.MethodPost, "/api/login", errorMW(authHandler.handleLogin))
	r.Method(http.MethodPost, "/api/logout", errorMW(authHandler.handleLogout))
	r.Method(http.MethodGet, "/api/session", errorMW(authHandler.handleSession))
	r.Method(http.MethodGet, "/api/zone", errorMW(zoneHandler.handleGet))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAdmin)

		r.Method(http.MethodPost, "/api/zone", errorMW(zoneHandler.handlePost))
	})

	return r
}
