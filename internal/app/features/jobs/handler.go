// internal/app/features/jobs/handler.go

// Package jobs exposes employer job postings and the student
// application pipeline (submitted → reviewed → rejected/offered).
package jobs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	jobapplicationstore "github.com/dalemusser/careerhub/internal/app/store/jobapplications"
	jobstore "github.com/dalemusser/careerhub/internal/app/store/jobs"
	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Handler struct {
	Log   *zap.Logger
	Jobs  *jobstore.Store
	Apps  *jobapplicationstore.Store
	Users *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Jobs:  jobstore.New(db),
		Apps:  jobapplicationstore.New(db),
		Users: userstore.New(db),
	}
}

func idParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

// HandleList serves GET /jobs?mine=true&type=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var f jobstore.Filter
	if r.URL.Query().Get("mine") == "true" {
		f.EmployerID = &userID
	}
	f.JobType = r.URL.Query().Get("type")

	jobs, err := h.Jobs.List(r.Context(), f)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"jobs": jobs})
}

type createInput struct {
	Title       string `json:"title" label:"Title" validate:"required,max=200"`
	Description string `json:"description" label:"Description" validate:"required,max=10000"`
	Location    string `json:"location" label:"Location" validate:"max=200"`
	JobType     string `json:"jobType" label:"Job type" validate:"omitempty,oneof=full-time part-time internship ojt"`
	Salary      string `json:"salary" label:"Salary" validate:"max=100"`
}

// HandleCreate serves POST /jobs. Employers only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleEmployer && role != models.RoleAdmin {
		httpjson.Error(w, h.Log, apperr.Authorization("only employers can post jobs"))
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

	employer, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	j, err := h.Jobs.Create(r.Context(), employer, jobstore.CreateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Location:    in.Location,
		JobType:     in.JobType,
		Salary:      in.Salary,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      j.ID.Hex(),
		"job":     j,
	})
}

// HandleGet serves GET /jobs/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	jobID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	j, err := h.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("job"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"job": j})
}

type updateInput struct {
	Title       string `json:"title" label:"Title" validate:"max=200"`
	Description string `json:"description" label:"Description" validate:"max=10000"`
	Location    string `json:"location" label:"Location" validate:"max=200"`
	JobType     string `json:"jobType" label:"Job type" validate:"omitempty,oneof=full-time part-time internship ojt"`
	Salary      string `json:"salary" label:"Salary" validate:"max=100"`
	Status      string `json:"status" label:"Status" validate:"omitempty,oneof=active closed"`
}

// HandleUpdate serves PUT /jobs/{id}. Posting employer only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	jobID, err := idParam(r, "id")
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

	err = h.Jobs.UpdateInfo(r.Context(), jobID, userID, jobstore.UpdateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Location:    in.Location,
		JobType:     in.JobType,
		Salary:      in.Salary,
		Status:      in.Status,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleClose serves DELETE /jobs/{id}. Soft-close.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	jobID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Jobs.Close(r.Context(), jobID, userID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

type applyInput struct {
	CoverMessage string `json:"coverMessage" label:"Cover message" validate:"max=5000"`
}

// HandleApply serves POST /jobs/{id}/applications. Students only; one
// application per posting.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleStudent {
		httpjson.Error(w, h.Log, apperr.Authorization("only students can apply to jobs"))
		return
	}
	jobID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in applyInput
	if err := httpjson.DecodeOptional(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	j, err := h.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("job"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if j.Status != models.JobStatusActive {
		httpjson.Error(w, h.Log, apperr.Conflict("This job is no longer accepting applications"))
		return
	}

	student, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	a, err := h.Apps.Create(r.Context(), jobapplicationstore.CreateInput{
		JobID:        j.ID,
		JobTitle:     j.Title,
		Company:      j.Company,
		StudentID:    student.ID,
		StudentName:  student.FullName,
		StudentEmail: student.Email,
		Major:        student.Major,
		CoverMessage: htmlsanitize.UGC(in.CoverMessage),
	})
	if err != nil {
		if err == jobapplicationstore.ErrDuplicateApplication {
			httpjson.Error(w, h.Log, apperr.Conflict("You have already applied to this job"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      a.ID.Hex(),
	})
}

// HandleListApplications serves GET /jobs/{id}/applications. Posting
// employer or admin.
func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	jobID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	j, err := h.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("job"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if j.EmployerID != userID && !authz.IsAdmin(r) {
		httpjson.Error(w, h.Log, apperr.Authorization("only the posting employer can view applicants"))
		return
	}

	apps, err := h.Apps.ListByJob(r.Context(), jobID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"applications": apps})
}

type reviewInput struct {
	Status string `json:"status" label:"Status" validate:"required,oneof=reviewed rejected offered"`
}

// HandleReview serves PUT /jobs/{id}/applications/{applicationId}.
// Posting employer only.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	jobID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	appID, err := idParam(r, "applicationId")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in reviewInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	j, err := h.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("job"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if j.EmployerID != userID {
		httpjson.Error(w, h.Log, apperr.Authorization("only the posting employer can review applications"))
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
	if a.JobID != jobID {
		httpjson.Error(w, h.Log, apperr.NotFound("application"))
		return
	}

	if err := h.Apps.SetStatus(r.Context(), appID, in.Status); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleMyApplications serves GET /jobs/my-applications. Students only.
func (h *Handler) HandleMyApplications(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleStudent {
		httpjson.Error(w, h.Log, apperr.Authorization("only students have job applications"))
		return
	}

	apps, err := h.Apps.ListByStudent(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"applications": apps})
}
