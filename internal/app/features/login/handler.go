// internal/app/features/login/handler.go

// Package login implements local email+password sign-in against bcrypt
// hashes stored on the user document.
package login

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/auth"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/app/system/normalize"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sm,
		Users:      userstore.New(db),
	}
}

type loginInput struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// HandleLogin serves POST /auth/login. A wrong email and a wrong
// password produce the same message so the endpoint does not confirm
// which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	badCredentials := apperr.Authorization("invalid email or password")

	u, err := h.Users.GetByEmail(r.Context(), normalize.Email(in.Email))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, badCredentials)
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if u.Status != "active" {
		httpjson.Error(w, h.Log, apperr.Authorization("account is disabled"))
		return
	}
	if u.PasswordHash == "" {
		// Google-only account; no password to check.
		httpjson.Error(w, h.Log, badCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		h.Log.Info("failed login", zap.String("email", u.Email))
		httpjson.Error(w, h.Log, badCredentials)
		return
	}

	err = h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    u,
	})
}
