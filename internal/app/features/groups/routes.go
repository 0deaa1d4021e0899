// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Everything under /groups requires authentication.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// Static route first so chi never treats it as {id}.
		pr.Get("/my-applications", h.HandleMyApplications)

		pr.Get("/", h.HandleListGroups)
		pr.Post("/", h.HandleCreateGroup)

		pr.Get("/{id}", h.HandleGetGroup)
		pr.Put("/{id}", h.HandleUpdateGroup)
		pr.Delete("/{id}", h.HandleCloseGroup)

		pr.Get("/{id}/applications", h.HandleListApplications)
		pr.Post("/{id}/applications", h.HandleApply)
		pr.Put("/{id}/applications/{applicationId}", h.HandleDecide)
	})

	return r
}
