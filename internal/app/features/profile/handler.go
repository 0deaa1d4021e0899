// internal/app/features/profile/handler.go
package profile

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/authz"
	"github.com/dalemusser/careerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
)

type Handler struct {
	Log   *zap.Logger
	Users *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Users: userstore.New(db)}
}

// HandleGet serves GET /profile — the caller's own account.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	u, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("user"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"user": u})
}

type updateInput struct {
	FullName  string `json:"fullName" label:"Name" validate:"max=200"`
	Major     string `json:"major" label:"Major" validate:"max=200"`
	YearLevel string `json:"yearLevel" label:"Year level" validate:"max=50"`
	Company   string `json:"company" label:"Company" validate:"max=200"`
	Headline  string `json:"headline" label:"Headline" validate:"max=500"`
}

// HandleUpdate serves PUT /profile. Empty fields are left unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
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

	err := h.Users.UpdateProfile(r.Context(), userID, userstore.ProfileUpdate{
		FullName:  in.FullName,
		Major:     in.Major,
		YearLevel: in.YearLevel,
		Company:   in.Company,
		Headline:  htmlsanitize.Strict(in.Headline),
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("user"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
