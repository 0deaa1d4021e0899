// internal/app/features/mentorship/handler.go

// Package mentorship covers 1:1 mentorship requests between a student
// and an alumni, separate from the group workflow.
package mentorship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	requeststore "github.com/dalemusser/careerhub/internal/app/store/mentorshiprequests"
	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Handler struct {
	Log      *zap.Logger
	Requests *requeststore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Requests: requeststore.New(db),
		Users:    userstore.New(db),
	}
}

// HandleList serves GET /mentorship/requests. Students see requests
// they filed; alumni see requests addressed to them.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var (
		reqs []models.MentorshipRequest
		err  error
	)
	if role == models.RoleStudent {
		reqs, err = h.Requests.ListByStudent(r.Context(), userID)
	} else {
		reqs, err = h.Requests.ListByMentor(r.Context(), userID)
	}
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if reqs == nil {
		reqs = []models.MentorshipRequest{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"requests": reqs})
}

type createInput struct {
	MentorID string `json:"mentorId" label:"Mentor" validate:"required"`
	Topic    string `json:"topic" label:"Topic" validate:"required,max=200"`
	Message  string `json:"message" label:"Message" validate:"max=2000"`
}

// HandleCreate serves POST /mentorship/requests. Students only; one
// pending request per mentor at a time.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleStudent {
		httpjson.Error(w, h.Log, apperr.Authorization("only students can request mentorship"))
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

	mentorID, err := primitive.ObjectIDFromHex(in.MentorID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid mentorId"))
		return
	}

	mentor, err := h.Users.GetByID(r.Context(), mentorID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("mentor"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if mentor.Role != models.RoleAlumni && mentor.Role != models.RoleFaculty {
		httpjson.Error(w, h.Log, apperr.Validation("mentor must be an alumni or faculty member"))
		return
	}

	existing, err := h.Requests.FindPending(r.Context(), mentorID, userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if existing != nil {
		httpjson.Error(w, h.Log, apperr.Conflict("You already have a pending request with this mentor"))
		return
	}

	student, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	req, err := h.Requests.Create(r.Context(), requeststore.CreateInput{
		StudentID:   student.ID,
		StudentName: student.FullName,
		MentorID:    mentor.ID,
		MentorName:  mentor.FullName,
		Topic:       in.Topic,
		Message:     htmlsanitize.UGC(in.Message),
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      req.ID.Hex(),
	})
}

type decideInput struct {
	Status string `json:"status" label:"Status" validate:"required,oneof=accepted declined"`
}

// HandleDecide serves PUT /mentorship/requests/{id}. The addressed
// mentor only.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	reqID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid id"))
		return
	}

	var in decideInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	req, err := h.Requests.GetByID(r.Context(), reqID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("request"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.MentorID != userID {
		httpjson.Error(w, h.Log, apperr.Authorization("only the addressed mentor can respond"))
		return
	}
	if req.Status != models.ApplicationPending {
		httpjson.Error(w, h.Log, apperr.Conflict("request has already been decided"))
		return
	}

	if err := h.Requests.SetStatus(r.Context(), reqID, in.Status); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
