package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sluice-scada/internal/config"
	"sluice-scada/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "sluice:session:"

// Session server-side login state, referenced by an opaque cookie.
type Session struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// SessionStore keeps sessions in the KV store under a random id.
type SessionStore struct {
	kv         store.KV
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *zap.Logger
}

func NewSessionStore(kv store.KV, cfg config.SessionConfig, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		kv:         kv,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		logger:     logger,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores sess and sets the session cookie on w.
func (s *SessionStore) Create(ctx context.Context, w http.ResponseWriter, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	id := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKey(id), string(raw), s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the session for r, or nil when there is none (no cookie,
// malformed id, expired or unknown session).
func (s *SessionStore) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, ok := s.sessionID(r)
	if !ok {
		return nil, nil
	}
	raw, err := s.kv.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Warn("Discarding corrupt session", zap.Error(err))
		return nil, nil
	}
	return &sess, nil
}

// Destroy removes the session (if any) and expires the cookie.
func (s *SessionStore) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	id, ok := s.sessionID(r)
	if !ok {
		return nil
	}
	if err := s.kv.Del(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// sessionUserID loads the caller's session user id; a store failure is
// logged and treated as "no session".
func (s *SessionStore) sessionUserID(r *http.Request) *int64 {
	sess, err := s.Load(r.Context(), r)
	if err != nil {
		s.logger.Warn("Session lookup failed", zap.Error(err))
		return nil
	}
	if sess == nil {
		return nil
	}
	id := sess.UserID
	return &id
}
