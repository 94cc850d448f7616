package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sluice-scada/internal/domain"
	"sluice-scada/internal/repository"

	"go.uber.org/zap"
)

// StatusSnapshot dashboard aggregate returned by get_status.
// Gates and Sensors are keyed "A" and "B"; a missing row is null.
type StatusSnapshot struct {
	Gates       map[string]any  `json:"gates"`
	Sensors     map[string]any  `json:"sensors"`
	Metastation json.RawMessage `json:"metastation"`
	Timestamp   string          `json:"timestamp"`
}

// StatusService read-only dashboard aggregation
type StatusService interface {
	// GetStatus never fails: unreadable rows become null and weather
	// failures become the placeholder.
	GetStatus(ctx context.Context) *StatusSnapshot
}

type monitoredGate struct {
	key string
	id  domain.GateID
}

// Gates shown on the dashboard. The main gate is commandable but not displayed.
var monitoredGates = []monitoredGate{
	{key: "A", id: domain.GateA},
	{key: "B", id: domain.GateB},
}

type statusService struct {
	gates   repository.GatesRepository
	sensors repository.SensorReadingsRepository
	weather WeatherProvider
	logger  *zap.Logger
	now     func() time.Time
}

// NewStatusService weather may be nil, in which case the placeholder is always served.
func NewStatusService(gates repository.GatesRepository, sensors repository.SensorReadingsRepository, weather WeatherProvider, logger *zap.Logger) StatusService {
	return &statusService{
		gates:   gates,
		sensors: sensors,
		weather: weather,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *statusService) GetStatus(ctx context.Context) *StatusSnapshot {
	// weather runs alongside the store reads
	weatherCh := make(chan WeatherResult, 1)
	if s.weather != nil {
		go func() { weatherCh <- s.weather.CurrentWeather(ctx) }()
	} else {
		weatherCh <- WeatherResult{Err: ErrWeatherUnavailable}
	}

	snapshot := &StatusSnapshot{
		Gates:   make(map[string]any, len(monitoredGates)),
		Sensors: make(map[string]any, len(monitoredGates)),
	}
	for _, mg := range monitoredGates {
		snapshot.Gates[mg.key] = s.gateJSON(ctx, mg.id)
		snapshot.Sensors[mg.key] = s.sensorJSON(ctx, mg.id)
	}

	weather := <-weatherCh
	snapshot.Metastation = weather.Metastation()
	snapshot.Timestamp = s.now().Format(domain.TimestampLayout)
	return snapshot
}

func (s *statusService) gateJSON(ctx context.Context, id domain.GateID) any {
	gate, err := s.gates.GetGate(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to read gate", zap.Int("gate_id", int(id)), zap.Error(err))
		}
		return nil
	}
	return gate.ToJSON()
}

func (s *statusService) sensorJSON(ctx context.Context, id domain.GateID) any {
	reading, err := s.sensors.GetLatestReading(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to read latest sensor reading", zap.Int("gate_id", int(id)), zap.Error(err))
		}
		return nil
	}
	return reading.ToJSON()
}
