// internal/app/features/mentorship/routes.go
package mentorship

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/requests", h.HandleList)
		pr.Post("/requests", h.HandleCreate)
		pr.Put("/requests/{id}", h.HandleDecide)
	})
	return r
}
