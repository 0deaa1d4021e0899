// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/my-applications", h.HandleMyApplications)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleClose)

		pr.Get("/{id}/applications", h.HandleListApplications)
		pr.Post("/{id}/applications", h.HandleApply)
		pr.Put("/{id}/applications/{applicationId}", h.HandleReview)
	})
	return r
}
