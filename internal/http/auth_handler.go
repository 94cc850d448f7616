package httpapi

import (
	"errors"
	"net/http"

	"sluice-scada/internal/service"

	"go.uber.org/zap"
)

// AuthHandler login / logout
type AuthHandler struct {
	authService service.AuthService
	sessions    *SessionStore
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, sessions *SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload loginPayload
	if err := readBodyJSON(r, maxBodyBytes, &payload); err != nil {
		h.logger.Debug("Malformed login body", zap.Error(err))
	}

	res, err := h.authService.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrPersistence) {
			writeJSON(w, http.StatusOK, Fail(MsgDatabaseError))
			return
		}
		writeJSON(w, http.StatusOK, Fail(MsgInvalidCredentials))
		return
	}

	if err := h.sessions.Create(ctx, w, Session{UserID: res.UserID, Role: res.Role}); err != nil {
		h.logger.Error("Failed to create session",
			zap.Int64("user_id", res.UserID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, Fail(MsgDatabaseError))
		return
	}

	writeJSON(w, http.StatusOK, Ok(res, MsgLoginSuccessful))
}

// Logout drops the server-side session; it succeeds without one too.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Warn("Failed to delete session", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, Ok(nil, MsgLoggedOut))
}
