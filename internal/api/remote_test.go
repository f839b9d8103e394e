package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/eventsphere-api/internal/client"
	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/transport"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestRemote(t *testing.T, baseURL string, policy client.Policy, fn RoundTripperFunc) *Remote {
	t.Helper()
	tc, err := transport.New(baseURL, transport.WithHTTPClient(&http.Client{Transport: fn}))
	require.NoError(t, err)
	noSleep := client.WithSleep(func(ctx context.Context, d time.Duration) error { return nil })
	return NewRemote(client.New(tc, policy, noSleep))
}

func TestRemote_GetEvents(t *testing.T) {
	var gotURL string
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 3},
		func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			return response(http.StatusOK, `{"success":true,"data":[{"id":"1","title":"Jazz Night"}]}`), nil
		})

	resp := r.GetEvents(context.Background(), &model.EventFilters{Category: "", City: "Delhi"})

	require.True(t, resp.Success)
	assert.Equal(t, "https://api.eventsphere.app/api/events?city=Delhi", gotURL)
	assert.Equal(t, "Jazz Night", resp.Data[0].Title)
	assert.Equal(t, 1, resp.CountOr(-1))
}

func TestRemote_GetEventsEmptyData(t *testing.T) {
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 1},
		func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"success":true,"data":null,"count":0}`), nil
		})

	resp := r.GetEvents(context.Background(), nil)

	require.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 0, resp.CountOr(-1))
}

func TestRemote_Paths(t *testing.T) {
	var got []string
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 1},
		func(req *http.Request) (*http.Response, error) {
			got = append(got, req.Method+" "+req.URL.EscapedPath())
			return response(http.StatusOK, `{"success":true,"data":{}}`), nil
		})
	ctx := context.Background()

	r.GetEventByID(ctx, "evt 1")
	r.GetUserBookings(ctx, "user/7")
	r.CreateBooking(ctx, model.BookingRequest{UserID: "u", EventID: "e", Quantity: 1})
	r.CheckHealth(ctx)

	assert.Equal(t, []string{
		"GET /api/events/evt%201",
		"GET /api/bookings/user/user%2F7",
		"POST /api/bookings",
		"GET /api/health",
	}, got)
}

func TestRemote_CreateBookingBody(t *testing.T) {
	var body model.BookingRequest
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 1},
		func(req *http.Request) (*http.Response, error) {
			b, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(b, &body)
			return response(http.StatusCreated, `{"success":true,"data":{"id":"b-1","status":"confirmed"}}`), nil
		})

	req := model.BookingRequest{
		UserID:      "u-1",
		EventID:     "evt-1001",
		Quantity:    2,
		UserDetails: model.UserDetails{Name: "Asha", Email: "asha@example.com"},
		TicketType:  "general",
	}
	resp := r.CreateBooking(context.Background(), req)

	require.True(t, resp.Success)
	assert.Equal(t, "b-1", resp.Data.ID)
	assert.Equal(t, model.BookingStatusConfirmed, resp.Data.Status)
	assert.Equal(t, req, body)
}

func TestRemote_BackendEnvelopeFailure(t *testing.T) {
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 3},
		func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"success":false,"message":"Event not found"}`), nil
		})

	resp := r.GetEventByID(context.Background(), "missing")

	assert.False(t, resp.Success)
	assert.Equal(t, "Event not found", resp.Error)
}

func TestRemote_ProductionRetries(t *testing.T) {
	calls := 0
	r := newTestRemote(t, "https://api.eventsphere.app/api", client.Policy{RetryAttempts: 3, RetryDelay: time.Millisecond},
		func(req *http.Request) (*http.Response, error) {
			calls++
			return response(http.StatusInternalServerError, "boom"), nil
		})

	resp := r.GetEvents(context.Background(), nil)

	assert.False(t, resp.Success)
	assert.Equal(t, "HTTP 500: boom", resp.Error)
	assert.Equal(t, 3, calls)
}

func TestUnwrap(t *testing.T) {
	outerFail := model.Fail[model.Response[string]]("HTTP 500: boom")
	assert.Equal(t, "HTTP 500: boom", unwrap(outerFail).Error)

	innerFail := model.OK(model.Response[string]{Success: false, Error: "bad"})
	assert.Equal(t, "bad", unwrap(innerFail).Error)

	innerNoMessage := model.OK(model.Response[string]{Success: false})
	assert.Equal(t, "Unknown error", unwrap(innerNoMessage).Error)

	ok := unwrap(model.OK(model.Response[string]{Success: true, Data: "x"}))
	assert.True(t, ok.Success)
	assert.Equal(t, "x", ok.Data)
}

// Fallback end to end: a localhost target fails fast and the bundled data answers.
func TestNewFromConfig_LocalFallback(t *testing.T) {
	calls := 0
	hc := &http.Client{Transport: RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, &dialError{}
	})}
	cfg := &config.Config{
		BaseURL:         "http://localhost:5000/api",
		IsLocalTarget:   true,
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Hour,
		Timeout:         time.Second,
	}

	a, err := NewFromConfig(cfg, nil, hc)
	require.NoError(t, err)

	resp := a.SearchEvents(context.Background(), "jazz")

	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "Jazz Night", resp.Data[0].Title)
	assert.False(t, a.GetOnlineStatus())
	assert.Equal(t, 1, calls)
}

func TestNewFromConfig_FallbackDisabled(t *testing.T) {
	hc := &http.Client{Transport: RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, &dialError{}
	})}
	cfg := &config.Config{BaseURL: "http://localhost:5000/api", IsLocalTarget: true, RetryAttempts: 1}

	a, err := NewFromConfig(cfg, nil, hc)
	require.NoError(t, err)

	resp := a.GetEvents(context.Background(), nil)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "network request failed")
	assert.True(t, a.GetOnlineStatus())
}

func TestNewFromConfig_InvalidBaseURL(t *testing.T) {
	_, err := NewFromConfig(&config.Config{BaseURL: ""}, nil, nil)
	assert.Error(t, err)
}

type dialError struct{}

func (*dialError) Error() string { return "dial tcp 127.0.0.1:5000: connect: connection refused" }
