// internal/app/features/users/handler.go

// Package users is the career-office admin surface for account
// management: directory listing, provisioning, and enable/disable.
package users

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/careerhub/internal/app/store/users"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
	"github.com/dalemusser/careerhub/internal/app/system/inputval"
	"github.com/dalemusser/careerhub/internal/app/system/normalize"
	"github.com/dalemusser/careerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	Log   *zap.Logger
	Users *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Users: userstore.New(db)}
}

// HandleList serves GET /users?role=&status=&q=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.Users.List(r.Context(), userstore.Filter{
		Role:   normalize.Role(q.Get("role")),
		Status: normalize.QueryParam(q.Get("status")),
		Search: normalize.QueryParam(q.Get("q")),
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"users": users})
}

type createInput struct {
	FullName  string `json:"fullName" label:"Name" validate:"required,max=200"`
	Email     string `json:"email" label:"Email" validate:"required,email"`
	Password  string `json:"password" label:"Password" validate:"omitempty,min=8,max=128"`
	Role      string `json:"role" label:"Role" validate:"required,oneof=student alumni employer faculty admin"`
	Major     string `json:"major" label:"Major" validate:"max=200"`
	YearLevel string `json:"yearLevel" label:"Year level" validate:"max=50"`
	Company   string `json:"company" label:"Company" validate:"max=200"`
}

// HandleCreate serves POST /users. An empty password provisions a
// Google-only account.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	var hash string
	if in.Password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		hash = string(b)
	}

	u, err := h.Users.Create(r.Context(), userstore.CreateInput{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Company:      in.Company,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, h.Log, apperr.Conflict("an account with that email already exists"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      u.ID.Hex(),
		"user":    u,
	})
}

type statusInput struct {
	Status string `json:"status" label:"Status" validate:"required,oneof=active disabled"`
}

// HandleSetStatus serves PUT /users/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid id"))
		return
	}

	var in statusInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	if err := h.Users.SetStatus(r.Context(), id, in.Status); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
