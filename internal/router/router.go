// Package router sets up all HTTP routes and middleware chains: the
// server-rendered public site, the JSON admin API, and the enquiry and
// chat endpoints.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reelpress/internal/handlers"
	"reelpress/internal/middleware"
	"reelpress/internal/session"
	"reelpress/web"
)

// Deps carries everything the router wires together. LoginLimiter and
// PublicLimiter are owned by the caller, which stops them on shutdown.
type Deps struct {
	Sessions      *session.Store
	Admin         *handlers.Admin
	Auth          *handlers.Auth
	Public        *handlers.Public
	Contact       http.HandlerFunc
	Booking       http.HandlerFunc
	Chat          http.HandlerFunc
	LoginLimiter  *middleware.RateLimiter
	PublicLimiter *middleware.RateLimiter
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. CSRF runs globally so
	// public pages set the token cookie the forms and chat widget send back.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.NewCSRF(d.SecureCookies))

	// Health check.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public enquiry and chat API, rate limited per client IP.
	r.Group(func(r chi.Router) {
		if d.PublicLimiter != nil {
			r.Use(d.PublicLimiter.Middleware)
		}
		r.Post("/api/contact", d.Contact)
		r.Post("/api/booking", d.Booking)
		r.Post("/api/chat", d.Chat)
	})

	// Admin JSON API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions))

		// Login is reachable without a session, but rate limited.
		r.Group(func(r chi.Router) {
			if d.LoginLimiter != nil {
				r.Use(d.LoginLimiter.Middleware)
			}
			r.Post("/login", d.Auth.Login)
		})
		r.Post("/logout", d.Auth.Logout)

		// 2FA requires a session but not a completed challenge.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/2fa/verify", d.Auth.TwoFAVerify)
		})

		// Everything else requires auth and a verified 2FA challenge.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/me", d.Auth.Me)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.Admin.BlogList)
				r.Post("/", d.Admin.BlogCreate)
				r.Get("/{id}", d.Admin.BlogGet)
				r.Put("/{id}", d.Admin.BlogUpdate)
				r.Delete("/{id}", d.Admin.BlogDelete)
			})

			r.Route("/authors", func(r chi.Router) {
				r.Get("/", d.Admin.AuthorList)
				r.Post("/", d.Admin.AuthorCreate)
				r.Put("/{id}", d.Admin.AuthorUpdate)
				r.Delete("/{id}", d.Admin.AuthorDelete)
			})

			r.Route("/team", func(r chi.Router) {
				r.Get("/", d.Admin.TeamList)
				r.Post("/", d.Admin.TeamCreate)
				r.Put("/order", d.Admin.TeamReorder)
				r.Put("/{id}", d.Admin.TeamUpdate)
				r.Delete("/{id}", d.Admin.TeamDelete)
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Route("/images", func(r chi.Router) {
					r.Get("/", d.Admin.GalleryImagesList)
					r.Post("/", d.Admin.GalleryImagesCreate)
					r.Post("/delete", d.Admin.GalleryImagesDelete)
					r.Put("/order", d.Admin.GalleryImagesReorder)
					r.Put("/{id}", d.Admin.GalleryImageUpdate)
					r.Delete("/{id}", d.Admin.GalleryImageDelete)
				})
				r.Route("/videos", func(r chi.Router) {
					r.Get("/", d.Admin.GalleryVideosList)
					r.Post("/", d.Admin.GalleryVideoCreate)
					r.Put("/order", d.Admin.GalleryVideosReorder)
					r.Put("/{id}", d.Admin.GalleryVideoUpdate)
					r.Delete("/{id}", d.Admin.GalleryVideoDelete)
				})
			})

			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", d.Admin.TestimonialList)
				r.Post("/", d.Admin.TestimonialCreate)
				r.Put("/{id}", d.Admin.TestimonialUpdate)
				r.Delete("/{id}", d.Admin.TestimonialDelete)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/presign", d.Admin.PresignUpload)
				r.Post("/", d.Admin.Upload)
			})
		})
	})

	// Public site.
	r.Get("/", d.Public.Home)
	r.Get("/team", d.Public.Team)
	r.Get("/gallery", d.Public.Gallery)
	r.Get("/blog", d.Public.BlogIndex)
	r.Get("/blog/{slug}", d.Public.BlogPost)
	r.Get("/testimonials", d.Public.Testimonials)
	r.Get("/event", d.Public.Event)
	r.NotFound(d.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
