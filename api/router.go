package api

import (
	"net/http"
	"time"

	"querry/api/router/handlers"
	"querry/core"
	"querry/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router. All registered paths are relative to the /api base path.
func NewRouter(svc *core.Service) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	h := handlers.New(svc)
	handlers.RegisterHealthRoutes(router, h)
	handlers.RegisterCollectionRoutes(router, h)
	handlers.RegisterRequestRoutes(router, h)
	handlers.RegisterHeaderRoutes(router, h)
	handlers.RegisterIconRoutes(router, h)
	handlers.RegisterEventRoutes(router, h)
	handlers.RegisterSettingsRoutes(router, h)
	handlers.RegisterVersionRoutes(router, h)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("API SUB-ROUTER CATCH-ALL: Unhandled route relative to /api: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})
	return router
}

// NewServerHandler mounts the API under /api.
func NewServerHandler(svc *core.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Mount("/api", NewRouter(svc))
	return mux
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s -> %d (%d bytes, %s)", r.Method, r.RequestURI, ww.Status(), ww.BytesWritten(), time.Since(start))
	})
}
