package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/projecthub/internal/logging"
)

// RouterDeps bundles the services the router needs.
type RouterDeps struct {
	UserService     UserServiceInterface
	ProjectService  ProjectServiceInterface
	DocumentService DocumentServiceInterface
	Logger          logging.Logger
}

// NewRouter wires all API endpoints.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	projectHandler := NewProjectHandler(deps.ProjectService, deps.Logger)
	documentHandler := NewDocumentHandler(deps.DocumentService, deps.Logger)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)
		r.Get("/", userHandler.GetByEmail)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.Delete("/", userHandler.Delete)
			r.Put("/password", userHandler.ChangePassword)
			r.Post("/deactivate", userHandler.Deactivate)
			r.Post("/activate", userHandler.Activate)

			r.Get("/projects", projectHandler.ListForUser)
		})
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Post("/", projectHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", projectHandler.Get)
			r.Put("/", projectHandler.Update)
			r.Delete("/", projectHandler.Delete)

			r.Post("/participants", projectHandler.AddParticipant)
			r.Delete("/participants/{userID}", projectHandler.RemoveParticipant)

			r.Post("/documents", documentHandler.Upload)
			r.Get("/documents", documentHandler.List)
		})
	})

	r.Route("/api/documents/{id}", func(r chi.Router) {
		r.Get("/", documentHandler.Get)
		r.Get("/content", documentHandler.Download)
		r.Delete("/", documentHandler.Delete)
	})

	return r
}
