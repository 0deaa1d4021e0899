// internal/app/features/messages/handler.go

// Package messages is plain request/response direct messaging between
// portal users.
package messages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	messagestore "github.com/dalemusser/careerhub/internal/app/store/messages"
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
	Messages *messagestore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Messages: messagestore.New(db),
		Users:    userstore.New(db),
	}
}

// HandleList serves GET /messages?with={userID}. With a peer it returns
// the conversation (and marks the peer's messages read); without one it
// returns the caller's inbox and unread count.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	peer := r.URL.Query().Get("with")
	if peer == "" {
		inbox, err := h.Messages.ListInbox(r.Context(), userID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		unread, err := h.Messages.CountUnread(r.Context(), userID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		if inbox == nil {
			inbox = []models.Message{}
		}
		httpjson.Write(w, http.StatusOK, map[string]any{
			"messages": inbox,
			"unread":   unread,
		})
		return
	}

	peerID, err := primitive.ObjectIDFromHex(peer)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid with parameter"))
		return
	}

	msgs, err := h.Messages.Conversation(r.Context(), userID, peerID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Messages.MarkConversationRead(r.Context(), userID, peerID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"messages": msgs})
}

type sendInput struct {
	ReceiverID string `json:"receiverId" label:"Recipient" validate:"required"`
	Body       string `json:"body" label:"Message" validate:"required,max=5000"`
}

// HandleSend serves POST /messages.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}

	var in sendInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.Error(w, h.Log, apperr.Validation("%s", res.First()))
		return
	}

	receiverID, err := primitive.ObjectIDFromHex(in.ReceiverID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid receiverId"))
		return
	}
	if receiverID == userID {
		httpjson.Error(w, h.Log, apperr.Validation("cannot message yourself"))
		return
	}

	if _, err := h.Users.GetByID(r.Context(), receiverID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("recipient"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	sender, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	m, err := h.Messages.Create(r.Context(), sender, receiverID, htmlsanitize.Strict(in.Body))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      m.ID.Hex(),
	})
}

// HandleMarkRead serves PUT /messages/{id}/read. Receiver only; a
// message the caller did not receive is reported as absent.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Authorization("sign in required"))
		return
	}
	msgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid id"))
		return
	}

	if err := h.Messages.MarkRead(r.Context(), msgID, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apperr.NotFound("message"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
