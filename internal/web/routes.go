package web

import (
	"github.com/go-chi/chi/v5"

	"faceconsole/internal/web/handlers"
	"faceconsole/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	registerHandler := handlers.NewRegisterHandler(s.config, s.cache)
	recognizeHandler := handlers.NewRecognizeHandler(s.config)
	usersHandler := handlers.NewUsersHandler(s.config)
	schemaHandler := handlers.NewSchemaHandler()

	// Health check and schemas need no backend client
	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Get("/api/v1/schemas", schemaHandler.Get)

	// All other routes proxy to the face recognition backend
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithFaceClient(s.client))

			r.Post("/register", registerHandler.Register)
			r.Post("/recognize", recognizeHandler.Recognize)

			r.Get("/users", usersHandler.List)
			r.Get("/users/{id}", usersHandler.Get)
			r.Delete("/users/{id}", usersHandler.Delete)
		})
	})
}
