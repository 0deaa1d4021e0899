// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Post("/{id}/registrations", h.HandleRegister)
		pr.Delete("/{id}/registrations", h.HandleUnregister)

		// Career-office staff only.
		pr.Group(func(ar chi.Router) {
			ar.Use(sm.RequireRole(models.RoleAdmin, models.RoleFaculty))
			ar.Post("/", h.HandleCreate)
			ar.Put("/{id}", h.HandleUpdate)
			ar.Delete("/{id}", h.HandleCancel)
			ar.Get("/{id}/registrations", h.HandleListRegistrations)
		})
	})
	return r
}
