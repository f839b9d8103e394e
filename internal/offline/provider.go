// Package offline answers API calls from local data while the EventSphere
// backend is unreachable.
package offline

import (
	"context"

	"github.com/fakhrymubarak/eventsphere-api/internal/metrics"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

const (
	MsgEventNotFound      = "Event not found"
	MsgBookingsOffline    = "Bookings are not available offline. Please check your internet connection."
	MsgNewBookingsOffline = "Booking requires an internet connection. Please try again when you are online."
)

// Provider serves events from an EventSource and refuses booking operations.
type Provider struct {
	source EventSource
}

func NewProvider(source EventSource) *Provider {
	return &Provider{source: source}
}

func (p *Provider) GetEvents(ctx context.Context, filters *model.EventFilters) model.Response[[]model.Event] {
	metrics.OfflineServedTotal.WithLabelValues("getEvents").Inc()
	events, err := p.source.List(ctx)
	if err != nil {
		return model.Fail[[]model.Event](err.Error())
	}
	return model.OKList(FilterEvents(events, filters))
}

func (p *Provider) GetEventByID(ctx context.Context, id string) model.Response[model.Event] {
	metrics.OfflineServedTotal.WithLabelValues("getEventById").Inc()
	events, err := p.source.List(ctx)
	if err != nil {
		return model.Fail[model.Event](err.Error())
	}
	for _, e := range events {
		if e.ID == id {
			return model.OK(e)
		}
	}
	return model.Fail[model.Event](MsgEventNotFound)
}

func (p *Provider) GetUserBookings(ctx context.Context, userID string) model.Response[[]model.Booking] {
	metrics.OfflineServedTotal.WithLabelValues("getUserBookings").Inc()
	return model.Fail[[]model.Booking](MsgBookingsOffline)
}

func (p *Provider) CreateBooking(ctx context.Context, req model.BookingRequest) model.Response[model.Booking] {
	return model.Fail[model.Booking](MsgNewBookingsOffline)
}
