package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Actions accepted on the legacy ?action= endpoint.
const (
	ActionLogin       = "login"
	ActionLogout      = "logout"
	ActionGetStatus   = "get_status"
	ActionControlGate = "control_gate"
)

// ActionHandler single-endpoint dispatcher used by the dashboard and the
// mobile app: /api?action=<name>. Any method is accepted.
type ActionHandler struct {
	auth   *AuthHandler
	gates  *GateHandler
	logger *zap.Logger
}

func NewActionHandler(auth *AuthHandler, gates *GateHandler, logger *zap.Logger) *ActionHandler {
	return &ActionHandler{auth: auth, gates: gates, logger: logger}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	switch action {
	case ActionLogin:
		h.auth.Login(w, r)
	case ActionLogout:
		h.auth.Logout(w, r)
	case ActionGetStatus:
		h.gates.GetStatus(w, r)
	case ActionControlGate:
		h.gates.ControlGate(w, r)
	default:
		h.logger.Debug("Unknown action", zap.String("action", action))
		writeJSON(w, http.StatusOK, Fail(MsgInvalidAction))
	}
}
