package main

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

//go:embed all:frontend_dist
var frontendFS embed.FS

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsLocalhost)

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			httpError(w, http.StatusNotFound, "unknown API route")
		})

		r.Get("/health", a.handleHealth)
		r.Get("/options", a.handleOptions)
		r.Post("/session", a.handleCreateSession)
		r.Get("/state", a.handleState)

		r.Route("/blend", func(r chi.Router) {
			r.Post("/slots", a.handleAddSlot)
			r.Delete("/slots/{index}", a.handleClearSlot)
			r.Post("/slots/{index}/image", a.handleBlendUpload)
			r.Post("/settings", a.handleBlendSettings)
			r.Post("/reset", a.handleBlendReset)
			r.Post("/generate", a.handleBlendGenerate)
		})

		r.Route("/swap", func(r chi.Router) {
			r.Post("/{role}/image", a.handleSwapUpload)
			r.Delete("/{role}/image", a.handleSwapClear)
			r.Post("/settings", a.handleSwapSettings)
			r.Post("/generate", a.handleSwapGenerate)
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Post("/save", a.handleGallerySave)
			r.Get("/export", a.handleGalleryExport)
		})
	})

	r.Handle("/*", frontendHandler())

	return r
}

// frontendHandler serves the embedded single-page frontend. Paths that do not
// name an embedded file fall back to index.html so the page survives a hard
// refresh on any client-side route.
func frontendHandler() http.Handler {
	dist, err := fs.Sub(frontendFS, "frontend_dist")
	if err != nil {
		log.Fatal().Err(err).Msg("Embedded frontend is missing")
	}
	files := http.FileServer(http.FS(dist))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' blob: data:; style-src 'self' 'unsafe-inline'; connect-src 'self'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if req.URL.Path != "/" {
			if f, err := dist.Open(strings.TrimPrefix(req.URL.Path, "/")); err != nil {
				req.URL.Path = "/"
			} else {
				f.Close()
			}
		}
		files.ServeHTTP(w, req)
	})
}

// --- Middleware ---

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("API request")
		}
	})
}

func corsLocalhost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins; the app is a local tool.
		origin := r.Header.Get("Origin")
		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
