// internal/app/features/groups/handler.go

// Package groups exposes the mentorship-group workflow over HTTP:
// alumni create and manage groups, students apply, owners decide, and
// everyone sees counts that come from the memberships collection rather
// than a stored counter.
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/dalemusser/careerhub/internal/app/store/groups"
	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/app/workflow/groupflow"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Log    *zap.Logger
	Engine *groupflow.Engine
	Groups *groupstore.Store
	Users  *userstore.Store
}

// NewHandler constructs a groups Handler. Called from the bootstrap
// BuildHandler, where the database and logger are already initialized.
func NewHandler(db *mongo.Database, cfg groupflow.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Engine: groupflow.New(db, cfg, logger),
		Groups: groupstore.New(db),
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

// HandleListGroups serves GET /groups. The default view is every active
// group, open to applicants. ?myGroups=true narrows to the caller's own
// groups (any status); ?alumniId= narrows to a specific owner.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var f groupstore.Filter
	switch {
	case r.URL.Query().Get("myGroups") == "true":
		f.OwnerID = &userID
	case r.URL.Query().Get("alumniId") != "":
		ownerID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("alumniId"))
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Validation("invalid alumniId"))
			return
		}
		f.OwnerID = &ownerID
	}

	views, err := h.Engine.ListGroups(r.Context(), f)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if views == nil {
		views = []groupflow.GroupView{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"groups": views})
}

type createGroupInput struct {
	Title       string `json:"title" label:"Title" validate:"required,max=200"`
	Description string `json:"description" label:"Description" validate:"required,max=5000"`
	Category    string `json:"category" label:"Category" validate:"max=100"`
	MaxMembers  int    `json:"maxMembers" label:"Max members" validate:"omitempty,gt=0,lte=500"`
}

// HandleCreateGroup serves POST /groups. Alumni only.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleAlumni && role != models.RoleAdmin {
		httpjson.Error(w, h.Log, apperr.Authorization("only alumni can create mentorship groups"))
		return
	}

	var in createGroupInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	owner, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	g, err := h.Groups.Create(r.Context(), owner, groupstore.CreateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Category:    in.Category,
		MaxMembers:  in.MaxMembers,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      g.ID.Hex(),
		"group":   g,
	})
}

// groupDetail is a group with its member roster inlined.
type groupDetail struct {
	models.Group
	Members []models.GroupMembership `json:"members"`
}

// HandleGetGroup serves GET /groups/{id}.
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	g, members, err := h.Engine.GroupDetail(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if members == nil {
		members = []models.GroupMembership{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"group": groupDetail{Group: g, Members: members},
	})
}

type updateGroupInput struct {
	Title       string `json:"title" label:"Title" validate:"max=200"`
	Description string `json:"description" label:"Description" validate:"max=5000"`
	Category    string `json:"category" label:"Category" validate:"max=100"`
	MaxMembers  int    `json:"maxMembers" label:"Max members" validate:"omitempty,gt=0,lte=500"`
	Status      string `json:"status" label:"Status" validate:"omitempty,oneof=active closed"`
}

// HandleUpdateGroup serves PUT /groups/{id}. Owner only.
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	groupID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in updateGroupInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	err = h.Groups.UpdateInfo(r.Context(), groupID, userID, groupstore.UpdateInput{
		Title:       in.Title,
		Description: htmlsanitize.UGC(in.Description),
		Category:    in.Category,
		MaxMembers:  in.MaxMembers,
		Status:      in.Status,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCloseGroup serves DELETE /groups/{id}. Soft-close; the group
// document and its applications stay for the record.
func (h *Handler) HandleCloseGroup(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	groupID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Groups.Close(r.Context(), groupID, userID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleListApplications serves GET /groups/{id}/applications — the
// owner's (or an admin's) review queue, newest first.
func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	groupID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	apps, err := h.Engine.ListGroupApplications(r.Context(), groupID, userID, authz.IsAdmin(r))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if apps == nil {
		apps = []models.GroupApplication{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"applications": apps})
}

type applyInput struct {
	Message string `json:"message" label:"Message" validate:"max=2000"`
}

// HandleApply serves POST /groups/{id}/applications. Students only.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleStudent {
		httpjson.Error(w, h.Log, apperr.Authorization("only students can apply to mentorship groups"))
		return
	}
	groupID, err := idParam(r, "id")
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

	student, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	a, err := h.Engine.Apply(r.Context(), groupID, student, htmlsanitize.UGC(in.Message))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      a.ID.Hex(),
	})
}

type decideInput struct {
	Status string `json:"status"`
}

// HandleDecide serves PUT /groups/{id}/applications/{applicationId}.
// Group owner only.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	groupID, err := idParam(r, "id")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	appID, err := idParam(r, "applicationId")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in decideInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Engine.Decide(r.Context(), groupID, appID, userID, in.Status); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}

// HandleMyApplications serves GET /groups/my-applications. Students
// only.
func (h *Handler) HandleMyApplications(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	if role != models.RoleStudent {
		httpjson.Error(w, h.Log, apperr.Authorization("only students have group applications"))
		return
	}

	views, err := h.Engine.ListMyApplications(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if views == nil {
		views = []groupflow.ApplicationView{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"applications": views})
}
