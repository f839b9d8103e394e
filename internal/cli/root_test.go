package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/eventsphere-api/internal/api"
	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/handler"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/offline"
)

func fixtureEvents() []model.Event {
	return []model.Event{
		{ID: "1", Title: "Jazz Night", Category: "Music", Price: 500, AvailableTickets: 10, Venue: model.Venue{City: "Pune"}, Featured: true},
		{ID: "2", Title: "Tech Summit", Category: "Technology", Price: 2000, AvailableTickets: 100, Venue: model.Venue{City: "Delhi"}},
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	events := fixtureEvents()
	srv := httptest.NewServer(handler.NewRouter(
		handler.NewEventsHandler(offline.NewStaticSource(events), handler.NewBookingStore(events)), nil))
	t.Cleanup(srv.Close)
	return srv
}

// factoryFor points the API at baseURL as a local target with fallback on.
func factoryFor(baseURL string) Factory {
	return func(cfg *config.Config) (*api.EventSphere, error) {
		cfg.BaseURL = baseURL
		cfg.IsLocalTarget = true
		cfg.FallbackEnabled = true
		cfg.RedisEnabled = false
		return api.NewFromConfig(cfg, nil, nil)
	}
}

func run(t *testing.T, factory Factory, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeOutput[T any](t *testing.T, out string) model.Response[T] {
	t.Helper()
	var resp model.Response[T]
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand(nil)

	assert.Equal(t, "eventsphere", cmd.Use)
	for _, name := range []string{"events", "event", "bookings", "book", "health", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"base-url", "offline", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("format").DefValue)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	srv := newBackend(t)
	_, err := run(t, factoryFor(srv.URL+"/api"), "events", "--format", "yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestEventsCommand_Filters(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "events", "--category", "Music")
	require.NoError(t, err)

	resp := decodeOutput[[]model.Event](t, out)
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Jazz Night", resp.Data[0].Title)
	assert.Equal(t, 1, resp.CountOr(-1))
}

func TestEventsCommand_Featured(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "events", "--featured")
	require.NoError(t, err)

	resp := decodeOutput[[]model.Event](t, out)
	assert.Len(t, resp.Data, 2)
}

func TestEventsCommand_TextFormat(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "events", "--format", "text", "--city", "delhi")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Tech Summit")
}

func TestEventCommand_NotFound(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "event", "404")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decodeOutput[model.Event](t, out)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestBookCommand(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"),
		"book", "1", "--user", "u-1", "--email", "asha@example.com", "--name", "Asha", "-q", "2")
	require.NoError(t, err)

	resp := decodeOutput[model.Booking](t, out)
	require.True(t, resp.Success)
	assert.Equal(t, 1000.0, resp.Data.TotalAmount)
	assert.Equal(t, model.BookingStatusConfirmed, resp.Data.Status)
}

func TestBookCommand_RequiredFlags(t *testing.T) {
	srv := newBackend(t)
	_, err := run(t, factoryFor(srv.URL+"/api"), "book", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestBookingsCommand(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "bookings", "nobody")
	require.NoError(t, err)

	resp := decodeOutput[[]model.Booking](t, out)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestHealthCommand(t *testing.T) {
	srv := newBackend(t)
	out, err := run(t, factoryFor(srv.URL+"/api"), "health")
	require.NoError(t, err)

	resp := decodeOutput[model.HealthStatus](t, out)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Data.Status)
}

func TestOfflineFlag(t *testing.T) {
	srv := newBackend(t)
	factory := factoryFor(srv.URL + "/api")

	out, err := run(t, factory, "--offline", "events", "--search", "jazz")
	require.NoError(t, err)
	resp := decodeOutput[[]model.Event](t, out)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "evt-1001", resp.Data[0].ID)

	// Booking always goes to the backend, even after going offline.
	out, err = run(t, factory, "--offline", "book", "1", "--user", "u-1", "--email", "a@b.c")
	require.NoError(t, err)
	assert.True(t, decodeOutput[model.Booking](t, out).Success)

	out, err = run(t, factory, "--offline", "bookings", "u-1")
	require.Error(t, err)
	assert.Equal(t, offline.MsgBookingsOffline, decodeOutput[[]model.Booking](t, out).Error)
}

func TestUnreachableBackendFallsBack(t *testing.T) {
	srv := newBackend(t)
	url := srv.URL + "/api"
	srv.Close()

	out, err := run(t, factoryFor(url), "events", "--city", "pune")
	require.NoError(t, err)

	resp := decodeOutput[[]model.Event](t, out)
	require.True(t, resp.Success)
	for _, e := range resp.Data {
		assert.Equal(t, "Pune", e.Venue.City)
	}
}

func TestBookCommand_UnreachableBackend(t *testing.T) {
	srv := newBackend(t)
	url := srv.URL + "/api"
	srv.Close()

	out, err := run(t, factoryFor(url), "book", "1", "--user", "u-1", "--email", "a@b.c")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.False(t, decodeOutput[model.Booking](t, out).Success)
}

func TestOfflineOutputEnvelope(t *testing.T) {
	srv := newBackend(t)
	factory := factoryFor(srv.URL + "/api")

	out, err := run(t, factory, "--offline", "event", "missing")
	require.Error(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, offline.MsgEventNotFound, raw["error"])
	assert.NotContains(t, raw, "data")

	out, err = run(t, factory, "--offline", "events", "--city", "Mumbai")
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	assert.Equal(t, true, raw["success"])
	assert.Equal(t, []any{}, raw["data"])
	assert.Equal(t, float64(0), raw["count"])
}

func TestHealthCommand_UnreachableOmitsData(t *testing.T) {
	srv := newBackend(t)
	url := srv.URL + "/api"
	srv.Close()

	out, err := run(t, factoryFor(url), "health")
	require.Error(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	assert.Equal(t, false, raw["success"])
	assert.NotEmpty(t, raw["error"])
	assert.NotContains(t, raw, "data")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "boom", assert.AnError)))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, "boom: "+assert.AnError.Error(), WrapExitError(2, "boom", assert.AnError).Error())
}
