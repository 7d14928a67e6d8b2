package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/vibrant-blog/internal/auth"
	"github.com/ayush/vibrant-blog/internal/blog"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/metrics"
	"github.com/ayush/vibrant-blog/internal/middleware"
	"github.com/ayush/vibrant-blog/internal/newsletter"
	"github.com/ayush/vibrant-blog/internal/profile"
)

// routes bundles everything the HTTP router dispatches to.
type routes struct {
	auth       *auth.Handler
	profile    *profile.Handler
	newsletter *newsletter.Handler
	blogs      *blog.Handler
	uploads    *blog.Uploader
	tokens     middleware.TokenParser

	allowedOrigin string
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger.Log))
	r.Use(metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{rt.allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Public
	r.Post("/register", rt.auth.Register)
	r.Post("/login", rt.auth.Login)
	r.Post("/subscribe", rt.newsletter.Subscribe)
	r.Get("/blogs", rt.blogs.List)
	r.Get(blog.ImagePathPrefix+"{name}", rt.uploads.Serve)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(rt.tokens))
		r.Get("/profile", rt.profile.Get)
		r.Put("/profile", rt.profile.Update)
		r.Post("/blogs/create", rt.blogs.Create)
		r.Put("/update-blog/{id}", rt.blogs.Update)
		r.Delete("/delete-blog/{id}", rt.blogs.Delete)
	})

	return r
}
