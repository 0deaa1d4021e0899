// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
	"github.com/dalemusser/careerhub/internal/app/system/httpjson"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, SessionMgr: sm}
}

// HandleLogout serves POST /auth/logout. Clearing an absent session is
// not an error.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("sign out", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"success": true})
}
