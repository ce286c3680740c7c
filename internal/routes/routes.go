package routes

import (
	"io/fs"
	"net/http"

	"github.com/templui/contacts/assets"
	"github.com/templui/contacts/internal/app"
	"github.com/templui/contacts/internal/handler"
	"github.com/templui/contacts/internal/middleware"
	"github.com/templui/contacts/internal/storage"
)

// maxBodyBytes leaves room for a full-size picture plus the form fields.
const maxBodyBytes = 10 << 20

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	contact := handler.NewContactHandler(app.ContactService, app.CategoryService)
	user := handler.NewUserHandler(app.AuthService, app.UserService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Pictures on local disk. S3 pictures are served from the bucket.
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET "+storage.MediaPrefix, local.Handler())
	}

	// Contacts
	mux.HandleFunc("GET /{$}", contact.List)
	mux.HandleFunc("GET /search/{$}", contact.Search)
	mux.HandleFunc("GET /contact/{id}/detail/{$}", contact.Detail)

	// Auth (rate limited submissions)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.RateLimitAuth, app.Cfg.RateLimitWindow)

	mux.HandleFunc("GET /user/create/{$}", middleware.RequireGuest(user.RegisterPage))
	mux.HandleFunc("POST /user/create/{$}", rateLimiter(middleware.RequireGuest(user.Register)))
	mux.HandleFunc("GET /user/login/{$}", middleware.RequireGuest(user.LoginPage))
	mux.HandleFunc("POST /user/login/{$}", rateLimiter(middleware.RequireGuest(user.Login)))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /user/logout/{$}", middleware.RequireAuth(user.Logout))
	mux.HandleFunc("POST /user/logout/{$}", middleware.RequireAuth(user.Logout))
	mux.HandleFunc("GET /user/update/{$}", middleware.RequireAuth(user.ProfilePage))
	mux.HandleFunc("POST /user/update/{$}", middleware.RequireAuth(user.UpdateProfile))

	// Ownership is enforced by the contact service, not-owned reads as not found
	mux.HandleFunc("GET /contact/create/{$}", middleware.RequireAuth(contact.CreatePage))
	mux.HandleFunc("POST /contact/create/{$}", middleware.RequireAuth(contact.Create))
	mux.HandleFunc("GET /contact/{id}/update/{$}", middleware.RequireAuth(contact.UpdatePage))
	mux.HandleFunc("POST /contact/{id}/update/{$}", middleware.RequireAuth(contact.Update))
	mux.HandleFunc("POST /contact/{id}/delete/{$}", middleware.RequireAuth(contact.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", handler.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.LimitBody(maxBodyBytes), // Before CSRF, which parses the form
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService),
		middleware.WithURLPath,
	)

	return handler
}
