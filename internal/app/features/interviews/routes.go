// internal/app/features/interviews/routes.go
package interviews

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleReschedule)
		pr.Delete("/{id}", h.HandleCancel)
	})
	return r
}
