package routes

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/app"
	"github.com/bookboxapp/bookbox/internal/handler"
	"github.com/bookboxapp/bookbox/internal/middleware"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/validation"
)

func SetupRoutes(app *app.App) http.Handler {
	validator := validation.NewRequestValidator()

	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, validator)
	account := handler.NewAccountHandler(app.UserService, app.AuthService, app.SubscriptionService, app.UsageCounter, app.EntitlementGuard, validator)
	box := handler.NewBoxHandler(app.BoxService, app.FavoriteService, app.VisitService, validator)
	favorite := handler.NewFavoriteHandler(app.FavoriteService, validator)
	visit := handler.NewVisitHandler(app.VisitService, validator)
	user := handler.NewUserHandler(app.UserService, app.BoxService)
	content := handler.NewContentHandler(app.ContentService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /api/pages/{slug}", content.Page)

	// Boxes are browsable logged out; the detail view adds per-user
	// flags when a session is present
	mux.HandleFunc("GET /api/boxes", box.List)
	mux.HandleFunc("GET /api/boxes/{id}", box.Get)
	mux.HandleFunc("GET /api/boxes/{id}/visits", visit.ListForBox)

	// Public profiles
	mux.HandleFunc("GET /api/users/{username}", user.Profile)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /api/auth/forgot-password", rateLimiter(middleware.RequireGuest(auth.ForgotPassword)))
	mux.HandleFunc("POST /api/auth/reset-password", rateLimiter(middleware.RequireGuest(auth.ResetPassword)))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(account.Me))
	mux.HandleFunc("GET /api/me/entitlements", middleware.RequireAuth(account.Entitlements))
	mux.HandleFunc("PATCH /api/me/profile", middleware.RequireAuth(account.UpdateProfile))
	mux.HandleFunc("POST /api/me/avatar", middleware.RequireAuth(account.UploadAvatar))
	mux.HandleFunc("POST /api/me/banner", middleware.RequireAuth(account.UploadBanner))
	mux.HandleFunc("DELETE /api/me/avatar", middleware.RequireAuth(account.RemoveAvatar))
	mux.HandleFunc("DELETE /api/me/banner", middleware.RequireAuth(account.RemoveBanner))
	mux.HandleFunc("POST /api/me/upgrade", middleware.RequireAuth(account.Upgrade))
	mux.HandleFunc("POST /api/me/downgrade", middleware.RequireAuth(account.Downgrade))
	mux.HandleFunc("DELETE /api/me", middleware.RequireAuth(account.DeleteAccount))

	// My collections
	mux.HandleFunc("GET /api/me/boxes", middleware.RequireAuth(box.Mine))
	mux.HandleFunc("GET /api/me/favorites", middleware.RequireAuth(favorite.Mine))
	mux.HandleFunc("GET /api/me/visits", middleware.RequireAuth(visit.Mine))

	// Boxes
	mux.HandleFunc("POST /api/boxes", middleware.RequireAuth(box.Create))
	mux.HandleFunc("DELETE /api/boxes/{id}", middleware.RequireAuth(box.Delete))
	mux.HandleFunc("POST /api/boxes/{id}/image", middleware.RequireAuth(box.UploadImage))

	// Visits and favorites
	mux.HandleFunc("POST /api/boxes/{id}/visits", middleware.RequireAuth(visit.Record))
	mux.HandleFunc("POST /api/boxes/{id}/favorite", middleware.RequireAuth(favorite.Toggle))
	mux.HandleFunc("PUT /api/boxes/{id}/favorite", middleware.RequireAuth(favorite.Set))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "not found")
	})

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (CSRF cookie flags depend on it)
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.SubscriptionService),
	)

	return handler
}
