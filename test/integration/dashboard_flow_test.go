package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grachmannico95/incident-replay/internal/config"
	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/eventbus"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/internal/handler"
	"github.com/grachmannico95/incident-replay/internal/metrics"
	"github.com/grachmannico95/incident-replay/internal/realtime"
	"github.com/grachmannico95/incident-replay/internal/report"
	"github.com/grachmannico95/incident-replay/internal/server"
	"github.com/grachmannico95/incident-replay/internal/service"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/internal/storage"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	hub    *realtime.Hub
	clock  *simulation.Clock
}

// setupTestServer wires the full stack except the ticker so the simulated
// time only moves when a test asks it to.
func setupTestServer(t *testing.T) *testEnv {
	log := logger.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	store := storage.Load(generator.DefaultSeed)
	clock := simulation.NewIncidentClock()
	clock.SetRunning(false)
	state := filters.NewState()

	bus := eventbus.New(log, &eventbus.Config{
		ChannelBuffer: 100,
		MaxRetries:    3,
	})

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	recorder := metrics.New()
	dashboardService := service.NewDashboardService(store, clock, state, log)
	simulationService := service.NewSimulationService(clock, state, bus, log)

	metricsConsumer := eventbus.NewMetricsConsumer(dashboardService, recorder, log)
	broadcastConsumer := eventbus.NewBroadcastConsumer(dashboardService, hub, log)
	for _, eventType := range []eventbus.EventType{eventbus.EventTypeTick, eventbus.EventTypeStateChanged} {
		require.NoError(t, bus.Subscribe(eventType, metricsConsumer))
		require.NoError(t, bus.Subscribe(eventType, broadcastConsumer))
	}
	require.NoError(t, bus.Start(ctx))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
	}

	srv := server.New(cfg, log, server.Handlers{
		Health:     handler.NewHealthHandler(hub),
		Dashboard:  handler.NewDashboardHandler(dashboardService, log),
		Simulation: handler.NewSimulationHandler(simulationService, log),
		Stream:     handler.NewStreamHandler(hub, log),
		Metrics:    recorder.Handler(),
	})

	testServer := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		testServer.Close()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = bus.Shutdown(shutdownCtx)
		cancel()
	})

	return &testEnv{server: testServer, hub: hub, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthCheck(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestOverviewAtInitialTime(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodGet, "/api/v1/overview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview domain.Overview
	decode(t, resp, &overview)

	assert.True(t, overview.Clock.CurrentTime.Equal(generator.IncidentStart.Add(30*time.Minute)))
	assert.False(t, overview.Clock.Running)
	assert.Equal(t, domain.DefaultFilterSelection(), overview.Filters)
	assert.Len(t, overview.Events, 5)
	assert.Greater(t, overview.Metrics.TotalTransactions, 0)
	assert.Equal(t, "30m 0s", overview.Formatted.IncidentDuration)
	assert.NotEmpty(t, overview.Buckets)
	assert.Len(t, overview.Processors, 3)
}

func TestSimulationActions(t *testing.T) {
	env := setupTestServer(t)
	start := env.clock.Now()

	resp := env.do(t, http.MethodPost, "/api/v1/simulation/advance", map[string]float64{"minutes": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state domain.ClockState
	decode(t, resp, &state)
	assert.True(t, state.CurrentTime.Equal(start.Add(10*time.Minute)))

	resp = env.do(t, http.MethodPost, "/api/v1/simulation/advance", map[string]float64{"minutes": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/simulation/speed", map[string]float64{"speed": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/simulation/seek", map[string]string{"time": "not-a-time"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/simulation/seek", map[string]string{"time": "2030-01-01T00:00:00Z"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.True(t, state.CurrentTime.Equal(generator.WindowEnd))

	resp = env.do(t, http.MethodGet, "/api/v1/events", nil)
	var events struct {
		Count int `json:"count"`
	}
	decode(t, resp, &events)
	assert.Equal(t, 8, events.Count)

	resp = env.do(t, http.MethodPost, "/api/v1/simulation/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.True(t, state.CurrentTime.Equal(generator.BaseDate))
	assert.True(t, state.Running)
}

func TestFilterFlow(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodPatch, "/api/v1/filters", map[string]interface{}{
		"countries": []string{"BR"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/transactions?limit=50", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Count        int                  `json:"count"`
		Transactions []domain.Transaction `json:"transactions"`
	}
	decode(t, resp, &page)
	require.NotZero(t, page.Count)
	assert.LessOrEqual(t, page.Count, 50)
	for _, tx := range page.Transactions {
		assert.Equal(t, domain.CountryBR, tx.Country)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/filters/countries/BR/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sel domain.FilterSelection
	decode(t, resp, &sel)
	assert.Equal(t, []domain.Country{domain.CountryBR}, sel.Countries)

	resp = env.do(t, http.MethodPost, "/api/v1/filters/countries/AR/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/filters", map[string]interface{}{
		"time_period": "2hr",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/transactions?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/filters/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sel)
	assert.Equal(t, domain.DefaultFilterSelection(), sel)
}

func TestSettingsFlow(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodPut, "/api/v1/settings/alert-threshold", map[string]float64{"alert_threshold": 0.5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings domain.Settings
	decode(t, resp, &settings)
	assert.Equal(t, 0.5, settings.AlertThreshold)

	resp = env.do(t, http.MethodPut, "/api/v1/settings/alert-threshold", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/settings/comparison/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &settings)
	assert.True(t, settings.ComparisonMode)
}

func TestExport(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment; filename=\"incident-report-"))

	var r report.Report
	decode(t, resp, &r)
	assert.Equal(t, generator.DefaultSeed, r.DataReproduction.Seed)
	assert.Equal(t, report.GeneratorName, r.DataReproduction.Generator)
	assert.Greater(t, r.Summary.TotalTransactions, 0)
	assert.Len(t, r.ProcessorPerformance, 3)
}

func TestDataset(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodGet, "/api/v1/dataset?seed=7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data domain.GeneratedData
	decode(t, resp, &data)
	assert.Equal(t, int64(7), data.Seed)
	assert.Equal(t, generator.Generate(7).Transactions[0].ID, data.Transactions[0].ID)

	for _, path := range []string{"/api/v1/dataset", "/api/v1/dataset?seed=x", "/api/v1/dataset?seed=-1"} {
		resp = env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestMetricsEndpointReflectsStateChange(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, http.MethodPost, "/api/v1/simulation/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		resp, err := http.Get(env.server.URL + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), "incident_replay_running 1")
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWebSocketReceivesOverview(t *testing.T) {
	env := setupTestServer(t)

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp := env.do(t, http.MethodPost, "/api/v1/simulation/advance", map[string]float64{"minutes": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type    string          `json:"type"`
		Reason  string          `json:"reason"`
		Payload domain.Overview `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, string(realtime.MessageTypeOverview), msg.Type)
	assert.Equal(t, service.ActionAdvance, msg.Reason)
	assert.True(t, msg.Payload.Clock.CurrentTime.Equal(generator.IncidentStart.Add(31*time.Minute)))
}
