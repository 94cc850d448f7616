package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"sluice-scada/internal/config"
	"sluice-scada/internal/domain"
	"sluice-scada/internal/service"
	"sluice-scada/internal/store"

	"go.uber.org/zap"
)

type fakeKV struct {
	mu     sync.Mutex
	m      map[string]string
	getErr error
	setErr error
}

func newFakeKV() *fakeKV { return &fakeKV{m: map[string]string{}} }

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.m[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.m[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}

type fakeAuthService struct {
	result *service.LoginResult
	err    error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return nil, service.ErrInvalidCredentials
	}
	return f.result, nil
}

type fakeGateService struct {
	requests []service.ControlRequest
	result   *service.CommandResult
	err      error
	history  []domain.GateHistory
	histErr  error
}

func (f *fakeGateService) ControlGate(ctx context.Context, req service.ControlRequest) (*service.CommandResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if req.SessionUserID == nil && req.PayloadUserID == nil {
		return nil, service.ErrUnauthorized
	}
	return f.result, nil
}

func (f *fakeGateService) RecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error) {
	if f.histErr != nil {
		return nil, f.histErr
	}
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

type fakeStatusService struct {
	snapshot *service.StatusSnapshot
}

func (f *fakeStatusService) GetStatus(ctx context.Context) *service.StatusSnapshot {
	return f.snapshot
}

var errBoom = errors.New("boom")

type handlerFixture struct {
	kv       *fakeKV
	sessions *SessionStore
	auth     *fakeAuthService
	gates    *fakeGateService
	status   *fakeStatusService
	router   *Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	logger := zap.NewNop()
	f := &handlerFixture{
		kv:     newFakeKV(),
		auth:   &fakeAuthService{},
		gates:  &fakeGateService{result: &service.CommandResult{NewPosition: 100, GateID: domain.GateA}},
		status: &fakeStatusService{},
	}
	f.sessions = NewSessionStore(f.kv, config.SessionConfig{CookieName: "SCADA_SESSION", TTL: time.Hour}, logger)

	authHandler := NewAuthHandler(f.auth, f.sessions, logger)
	gateHandler := NewGateHandler(f.gates, f.status, f.sessions, logger)

	f.router = NewRouter(logger)
	f.router.RegisterActionRoutes(NewActionHandler(authHandler, gateHandler, logger))
	f.router.RegisterAPIRoutes(authHandler, gateHandler)
	return f
}

// loginCookie stores a session for userID and returns its cookie.
func (f *handlerFixture) loginCookie(t *testing.T, userID int64) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := f.sessions.Create(context.Background(), rec, Session{UserID: userID, Role: "operator"}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}
