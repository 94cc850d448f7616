package service

import (
	"context"
	"sync"
	"time"

	"sluice-scada/internal/domain"
	"sluice-scada/internal/repository"

	"go.uber.org/zap"
)

func getTestLogger() *zap.Logger {
	return zap.NewNop()
}

type fakeUsersRepo struct {
	users     map[int64]*domain.User
	existsErr error
	lookupErr error
	calls     int
}

func newFakeUsersRepo(users ...*domain.User) *fakeUsersRepo {
	r := &fakeUsersRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUsersRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	r.calls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUsersRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUsersRepo) CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error) {
	id := int64(len(r.users) + 1)
	r.users[id] = &domain.User{ID: id, Username: username, PasswordHash: passwordHash, Role: role}
	return id, nil
}

type fakeGatesRepo struct {
	mu        sync.Mutex
	gates     map[domain.GateID]*domain.Gate
	getErr    error
	updateErr error
	history   *fakeHistoryRepo
}

func newFakeGatesRepo() *fakeGatesRepo {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return &fakeGatesRepo{gates: map[domain.GateID]*domain.Gate{
		domain.GateMain: {ID: domain.GateMain, Name: "MAIN GATE", Status: domain.GateStatusIdle, LastUpdated: at},
		domain.GateA:    {ID: domain.GateA, Name: "GATE A", Status: domain.GateStatusIdle, LastUpdated: at},
		domain.GateB:    {ID: domain.GateB, Name: "GATE B", Status: domain.GateStatusIdle, LastUpdated: at},
	}}
}

func (r *fakeGatesRepo) GetGate(ctx context.Context, id domain.GateID) (*domain.Gate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	g, ok := r.gates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGatesRepo) ListGates(ctx context.Context) ([]domain.Gate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Gate, 0, len(r.gates))
	for _, id := range []domain.GateID{domain.GateMain, domain.GateA, domain.GateB} {
		if g, ok := r.gates[id]; ok {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGatesRepo) UpdateCommandedPosition(ctx context.Context, id domain.GateID, position int, status domain.GateStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	g, ok := r.gates[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.Position = position
	g.Status = status
	g.LastUpdated = at
	return nil
}

// UpdateCommandedPositionWithHistory applies both writes or neither.
func (r *fakeGatesRepo) UpdateCommandedPositionWithHistory(ctx context.Context, position int, status domain.GateStatus, entry domain.GateHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	g, ok := r.gates[entry.GateID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if r.history != nil && r.history.appendErr != nil {
		return 0, r.history.appendErr
	}
	g.Position = position
	g.Status = status
	g.LastUpdated = entry.CreatedAt
	if r.history == nil {
		return 0, nil
	}
	return r.history.AppendHistory(ctx, entry)
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	entries   []domain.GateHistory
	appendErr error
	listErr   error
}

func (r *fakeHistoryRepo) AppendHistory(ctx context.Context, entry domain.GateHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return 0, r.appendErr
	}
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return entry.ID, nil
}

func (r *fakeHistoryRepo) ListRecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.GateHistory, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type fakeSensorsRepo struct {
	readings map[domain.GateID]*domain.SensorReading
	err      error
}

func (r *fakeSensorsRepo) GetLatestReading(ctx context.Context, gateID domain.GateID) (*domain.SensorReading, error) {
	if r.err != nil {
		return nil, r.err
	}
	reading, ok := r.readings[gateID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return reading, nil
}

type fakePublisher struct {
	events []GateCommandEvent
	err    error
}

func (p *fakePublisher) PublishGateCommand(ctx context.Context, evt GateCommandEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

type fakeWeather struct {
	result WeatherResult
	delay  time.Duration
}

func (w *fakeWeather) CurrentWeather(ctx context.Context) WeatherResult {
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	return w.result
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
