// Package api is the entry point UI-side code talks to. EventSphere calls the
// backend and, when a call fails and a local implementation exists, answers
// from offline data instead and stays offline for the rest of the session.
package api

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/eventsphere-api/internal/metrics"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// Online is the networked implementation of the API.
type Online interface {
	GetEvents(ctx context.Context, filters *model.EventFilters) model.Response[[]model.Event]
	GetEventByID(ctx context.Context, id string) model.Response[model.Event]
	GetUserBookings(ctx context.Context, userID string) model.Response[[]model.Booking]
	CreateBooking(ctx context.Context, req model.BookingRequest) model.Response[model.Booking]
	CheckHealth(ctx context.Context) model.Response[model.HealthStatus]
}

// Offline is the local implementation. It has no health check, and
// CreateBooking is never routed to it.
type Offline interface {
	GetEvents(ctx context.Context, filters *model.EventFilters) model.Response[[]model.Event]
	GetEventByID(ctx context.Context, id string) model.Response[model.Event]
	GetUserBookings(ctx context.Context, userID string) model.Response[[]model.Booking]
	CreateBooking(ctx context.Context, req model.BookingRequest) model.Response[model.Booking]
}

// SnapshotSaver persists the unfiltered event list seen online.
type SnapshotSaver interface {
	Save(ctx context.Context, events []model.Event) error
}

// EventSphere routes every call to the online or offline implementation.
type EventSphere struct {
	online   Online
	offline  Offline
	snapshot SnapshotSaver
	logger   *zap.SugaredLogger

	isOnline atomic.Bool
}

// Option configures EventSphere.
type Option func(*EventSphere)

// WithOffline sets the fallback implementation. Without it every call goes online.
func WithOffline(offline Offline) Option {
	return func(a *EventSphere) {
		a.offline = offline
	}
}

// WithSnapshot stores successful unfiltered event listings for later offline use.
func WithSnapshot(s SnapshotSaver) Option {
	return func(a *EventSphere) {
		a.snapshot = s
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(a *EventSphere) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an orchestrator that starts in the online state.
func New(online Online, opts ...Option) *EventSphere {
	a := &EventSphere{
		online: online,
		logger: zap.NewNop().Sugar(),
	}
	a.isOnline.Store(true)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetOnlineStatus overrides the online flag, e.g. after a connectivity change.
func (a *EventSphere) SetOnlineStatus(online bool) {
	a.isOnline.Store(online)
}

func (a *EventSphere) GetOnlineStatus() bool {
	return a.isOnline.Load()
}

// withFallback runs online unless the client is already offline. An online
// failure flips the client offline and returns the offline result instead.
// offline may be nil when the operation has no local implementation.
func withFallback[T any](a *EventSphere, op string, online, offline func() model.Response[T]) model.Response[T] {
	if offline != nil && !a.isOnline.Load() {
		return offline()
	}

	resp := online()
	if resp.Success || offline == nil {
		return resp
	}

	if a.isOnline.Swap(false) {
		a.logger.Infow("Switching to offline mode", "operation", op, "error", resp.Error)
	}
	metrics.FallbacksTotal.WithLabelValues(op).Inc()
	return offline()
}

func (a *EventSphere) GetEvents(ctx context.Context, filters *model.EventFilters) model.Response[[]model.Event] {
	var offline func() model.Response[[]model.Event]
	if a.offline != nil {
		offline = func() model.Response[[]model.Event] { return a.offline.GetEvents(ctx, filters) }
	}
	return withFallback(a, "getEvents", func() model.Response[[]model.Event] {
		resp := a.online.GetEvents(ctx, filters)
		if resp.Success && filters.IsZero() && a.snapshot != nil {
			if err := a.snapshot.Save(ctx, resp.Data); err != nil {
				a.logger.Warnw("Failed to save events snapshot", "error", err)
			}
		}
		return resp
	}, offline)
}

func (a *EventSphere) GetEventByID(ctx context.Context, id string) model.Response[model.Event] {
	var offline func() model.Response[model.Event]
	if a.offline != nil {
		offline = func() model.Response[model.Event] { return a.offline.GetEventByID(ctx, id) }
	}
	return withFallback(a, "getEventById", func() model.Response[model.Event] {
		return a.online.GetEventByID(ctx, id)
	}, offline)
}

// GetFeaturedEvents is an unfiltered listing; the backend has no separate featured endpoint.
func (a *EventSphere) GetFeaturedEvents(ctx context.Context) model.Response[[]model.Event] {
	return a.GetEvents(ctx, nil)
}

func (a *EventSphere) SearchEvents(ctx context.Context, query string) model.Response[[]model.Event] {
	return a.GetEvents(ctx, &model.EventFilters{Search: query})
}

func (a *EventSphere) GetEventsByCategory(ctx context.Context, category string) model.Response[[]model.Event] {
	return a.GetEvents(ctx, &model.EventFilters{Category: category})
}

func (a *EventSphere) GetEventsByCity(ctx context.Context, city string) model.Response[[]model.Event] {
	return a.GetEvents(ctx, &model.EventFilters{City: city})
}

func (a *EventSphere) GetUserBookings(ctx context.Context, userID string) model.Response[[]model.Booking] {
	var offline func() model.Response[[]model.Booking]
	if a.offline != nil {
		offline = func() model.Response[[]model.Booking] { return a.offline.GetUserBookings(ctx, userID) }
	}
	return withFallback(a, "getUserBookings", func() model.Response[[]model.Booking] {
		return a.online.GetUserBookings(ctx, userID)
	}, offline)
}

// CreateBooking always goes to the backend. A booking has side effects, so a
// failure is returned as is and never simulated locally.
func (a *EventSphere) CreateBooking(ctx context.Context, req model.BookingRequest) model.Response[model.Booking] {
	return a.online.CreateBooking(ctx, req)
}

// CheckAPIHealth has no offline implementation; it reaches the backend even
// while offline so callers can decide to SetOnlineStatus(true).
func (a *EventSphere) CheckAPIHealth(ctx context.Context) model.Response[model.HealthStatus] {
	return withFallback[model.HealthStatus](a, "checkApiHealth", func() model.Response[model.HealthStatus] {
		return a.online.CheckHealth(ctx)
	}, nil)
}
