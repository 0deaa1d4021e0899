// internal/app/features/events/handler.go

// Package events covers career-office events and attendee registration.
// Registration hands back a uuid confirmation code for door check-in.
package events

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/dalemusser/careerhub/internal/app/store/events"
	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Handler struct {
	Log    *zap.Logger
	Events *eventstore.Store
	Users  *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Events: eventstore.New(db),
		Users:  userstore.New(db),
	}
}

func idParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

// eventView is an event with its live registration count.
type eventView struct {
	models.Event
	Registered int `json:"registered"`
}

// HandleList serves GET /events — upcoming active events with
// registration counts. ?mine=true returns the caller's registrations
// instead.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mine") == "true" {
		_, _, userID, ok := authz.UserCtx(r)
		if !ok {
			httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
			return
		}
		regs, err := h.Events.ListRegistrationsByUser(r.Context(), userID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		if regs == nil {
			regs = []models.EventRegistration{}
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"registrations": regs})
		return
	}

	events, err := h.Events.ListUpcoming(r.Context())
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	views := make([]eventView, len(events))
	for i, e := range events {
		n, err := h.Events.CountRegistrations(r.Context(), e.ID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		views[i] = eventView{Event: e, Registered: n}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"events": views})
}

type createInput struct {
	Title       string    `json:"title" label:"Title" validate:"required,max=200"`
	Description string    `json:"description" label:"Description" validate:"max=10000"`
	Location    string    `json:"location" label:"Location" validate:"max=200"`
	StartsAt    time.Time `json:"startsAt" label:"Start time" validate:"required"`
	EndsAt      time.Time `json:"endsAt" label:"End time"`
	Capacity    int       `json:"capacity" label:"Capacity" validate:"gte=0"`
}

// HandleCreate serves POST /events. Admin only (enforced in routes).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var in createInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	e, err := h.Events.Create(r.Context(), userID, eventstore.CreateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Capacity:    in.Capacity,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      e.ID.Hex(),
		"event":   e,
	})
}

// HandleGet serves GET /events/{id} with the attendee count.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	e, err := h.Events.GetByID(r.Context(), eventID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("event"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	n, err := h.Events.CountRegistrations(r.Context(), eventID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"event": eventView{Event: e, Registered: n}})
}

type updateInput struct {
	Title       string    `json:"title" label:"Title" validate:"max=200"`
	Description string    `json:"description" label:"Description" validate:"max=10000"`
	Location    string    `json:"location" label:"Location" validate:"max=200"`
	StartsAt    time.Time `json:"startsAt" label:"Start time"`
	EndsAt      time.Time `json:"endsAt" label:"End time"`
	Capacity    *int      `json:"capacity" label:"Capacity"`
}

// HandleUpdate serves PUT /events/{id}. Staff only (enforced in routes).
// Empty fields are left unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in updateInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	capacity := -1
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			httpjson.Error(w, h.Log, apperr.Validation("Capacity must be zero or more."))
			return
		}
		capacity = *in.Capacity
	}

	err = h.Events.UpdateInfo(r.Context(), eventID, eventstore.UpdateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Capacity:    capacity,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("event"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCancel serves DELETE /events/{id}. Admin only (enforced in
// routes). Soft-cancel; registrations stay for the record.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Events.Cancel(r.Context(), eventID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("event"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleRegister serves POST /events/{id}/registrations. Capacity is
// checked at registration time; 0 means unlimited.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	e, err := h.Events.GetByID(r.Context(), eventID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("event"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if e.Status != models.EventStatusActive {
		httpjson.Error(w, h.Log, apperr.Conflict("Event is not open for registration"))
		return
	}
	if e.Capacity > 0 {
		n, err := h.Events.CountRegistrations(r.Context(), eventID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		if n >= e.Capacity {
			httpjson.Error(w, h.Log, apperr.Conflict("Event is full"))
			return
		}
	}

	u, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	reg, err := h.Events.Register(r.Context(), eventID, u)
	if err != nil {
		if err == eventstore.ErrDuplicateRegistration {
			httpjson.Error(w, h.Log, apperr.Conflict("You are already registered for this event"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      reg.ID.Hex(),
		"code":    reg.Code,
	})
}

// HandleUnregister serves DELETE /events/{id}/registrations — the
// caller cancels their own registration.
func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Events.Unregister(r.Context(), eventID, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("registration"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleListRegistrations serves GET /events/{id}/registrations. Admin
// only (enforced in routes).
func (h *Handler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	regs, err := h.Events.ListRegistrations(r.Context(), eventID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if regs == nil {
		regs = []models.EventRegistration{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"registrations": regs})
}
