package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sluice-scada/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStatusService(gates *fakeGatesRepo, sensors *fakeSensorsRepo, weather WeatherProvider) *statusService {
	svc := NewStatusService(gates, sensors, weather, getTestLogger()).(*statusService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestStatusService_GetStatus(t *testing.T) {
	gates := newFakeGatesRepo()
	gates.gates[domain.GateA].Position = 40
	sensors := &fakeSensorsRepo{readings: map[domain.GateID]*domain.SensorReading{
		domain.GateA: {GateID: domain.GateA, Fields: map[string]any{"gate_id": int64(2), "water_level_upstream": 3.4}},
	}}
	weather := &fakeWeather{result: WeatherResult{Data: json.RawMessage(sampleForecast)}}

	snap := newTestStatusService(gates, sensors, weather).GetStatus(context.Background())

	require.Contains(t, snap.Gates, "A")
	require.Contains(t, snap.Gates, "B")
	gateA := snap.Gates["A"].(map[string]any)
	assert.Equal(t, 40, gateA["position"])
	assert.Equal(t, "GATE A", gateA["name"])
	assert.Equal(t, "2024-05-01 08:00:00", gateA["last_updated"])

	assert.Equal(t, 3.4, snap.Sensors["A"].(map[string]any)["water_level_upstream"])
	assert.Nil(t, snap.Sensors["B"])
	assert.NotContains(t, snap.Gates, "MAIN")

	assert.JSONEq(t, sampleForecast, string(snap.Metastation))
	assert.Equal(t, "2024-05-01 12:30:00", snap.Timestamp)
}

func TestStatusService_GetStatus_Degraded(t *testing.T) {
	gates := newFakeGatesRepo()
	delete(gates.gates, domain.GateB)
	sensors := &fakeSensorsRepo{err: errors.New("relation does not exist")}
	weather := &fakeWeather{result: WeatherResult{Err: ErrWeatherUnavailable}}

	snap := newTestStatusService(gates, sensors, weather).GetStatus(context.Background())

	assert.NotNil(t, snap.Gates["A"])
	assert.Nil(t, snap.Gates["B"])
	assert.Nil(t, snap.Sensors["A"])
	assert.Nil(t, snap.Sensors["B"])
	assert.JSONEq(t, `{"error":"Weather unavailable"}`, string(snap.Metastation))

	out, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"B":null`)
}

func TestStatusService_GetStatus_NilWeather(t *testing.T) {
	snap := newTestStatusService(newFakeGatesRepo(), &fakeSensorsRepo{}, nil).GetStatus(context.Background())
	assert.JSONEq(t, `{"error":"Weather unavailable"}`, string(snap.Metastation))
}

func TestStatusService_GetStatus_WeatherConcurrentWithReads(t *testing.T) {
	weather := &fakeWeather{
		result: WeatherResult{Data: json.RawMessage(sampleForecast)},
		delay:  100 * time.Millisecond,
	}
	svc := newTestStatusService(newFakeGatesRepo(), &fakeSensorsRepo{}, weather)

	start := time.Now()
	snap := svc.GetStatus(context.Background())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
	assert.JSONEq(t, sampleForecast, string(snap.Metastation))
}
