// internal/app/features/interviews/handler.go

// Package interviews lets employers schedule interviews against job
// applications and both parties see their schedule.
package interviews

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	interviewstore "github.com/dalemusser/careerhub/internal/app/store/interviews"
	jobapplicationstore "github.com/dalemusser/careerhub/internal/app/store/jobapplications"
	jobstore "github.com/dalemusser/careerhub/internal/app/store/jobs"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Handler struct {
	Log        *zap.Logger
	Interviews *interviewstore.Store
	Jobs       *jobstore.Store
	Apps       *jobapplicationstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Interviews: interviewstore.New(db),
		Jobs:       jobstore.New(db),
		Apps:       jobapplicationstore.New(db),
	}
}

// HandleList serves GET /interviews — the caller's own schedule,
// whichever side of the table they sit on.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var (
		list []models.Interview
		err  error
	)
	if role == models.RoleEmployer {
		list, err = h.Interviews.ListByEmployer(r.Context(), userID)
	} else {
		list, err = h.Interviews.ListByStudent(r.Context(), userID)
	}
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Interview{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"interviews": list})
}

type createInput struct {
	ApplicationID string    `json:"applicationId" label:"Application" validate:"required"`
	ScheduledAt   time.Time `json:"scheduledAt" label:"Time" validate:"required"`
	Location      string    `json:"location" label:"Location" validate:"max=500"`
	Notes         string    `json:"notes" label:"Notes" validate:"max=2000"`
}

// HandleCreate serves POST /interviews. The employer who owns the job
// behind the application only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleEmployer {
		httpjson.Error(w, h.Log, apperr.Authorization("only employers can schedule interviews"))
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

	appID, err := primitive.ObjectIDFromHex(in.ApplicationID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid applicationId"))
		return
	}

	a, err := h.Apps.GetByID(r.Context(), appID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("application"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	j, err := h.Jobs.GetByID(r.Context(), a.JobID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if j.EmployerID != userID {
		httpjson.Error(w, h.Log, apperr.Authorization("only the posting employer can schedule this interview"))
		return
	}

	iv, err := h.Interviews.Create(r.Context(), interviewstore.CreateInput{
		ApplicationID: a.ID,
		JobID:         j.ID,
		JobTitle:      j.Title,
		EmployerID:    j.EmployerID,
		StudentID:     a.StudentID,
		ScheduledAt:   in.ScheduledAt,
		Location:      in.Location,
		Notes:         in.Notes,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success":   true,
		"id":        iv.ID.Hex(),
		"interview": iv,
	})
}

type rescheduleInput struct {
	ScheduledAt time.Time `json:"scheduledAt" label:"Time" validate:"required"`
	Location    string    `json:"location" label:"Location" validate:"max=500"`
}

// HandleReschedule serves PUT /interviews/{id}. Scheduling employer
// only.
func (h *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	ivID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid id"))
		return
	}

	var in rescheduleInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	iv, err := h.Interviews.GetByID(r.Context(), ivID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("interview"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if iv.EmployerID != userID {
		httpjson.Error(w, h.Log, apperr.Authorization("only the scheduling employer can reschedule"))
		return
	}
	if iv.Status != models.InterviewScheduled {
		httpjson.Error(w, h.Log, apperr.Conflict("interview is not scheduled"))
		return
	}

	if err := h.Interviews.Reschedule(r.Context(), ivID, in.ScheduledAt, in.Location); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCancel serves DELETE /interviews/{id}. Either participant may
// cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	ivID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid id"))
		return
	}

	iv, err := h.Interviews.GetByID(r.Context(), ivID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("interview"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if iv.EmployerID != userID && iv.StudentID != userID {
		httpjson.Error(w, h.Log, apperr.Authorization("only a participant can cancel this interview"))
		return
	}

	if err := h.Interviews.SetStatus(r.Context(), ivID, models.InterviewCancelled); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
