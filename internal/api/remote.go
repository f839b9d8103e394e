package api

import (
	"context"
	"net/url"

	"github.com/fakhrymubarak/eventsphere-api/internal/client"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/transport"
)

// Remote calls the EventSphere backend through the retrying client. The
// backend answers with the same envelope the API returns, so each call
// unwraps one level.
type Remote struct {
	client *client.Client
}

func NewRemote(c *client.Client) *Remote {
	return &Remote{client: c}
}

func (r *Remote) GetEvents(ctx context.Context, filters *model.EventFilters) model.Response[[]model.Event] {
	resp := unwrap(client.Do[model.Response[[]model.Event]](ctx, r.client, transport.Get("/events", filters.Query())))
	if resp.Success {
		if resp.Data == nil {
			resp.Data = []model.Event{}
		}
		if resp.Count == nil {
			n := len(resp.Data)
			resp.Count = &n
		}
	}
	return resp
}

func (r *Remote) GetEventByID(ctx context.Context, id string) model.Response[model.Event] {
	return unwrap(client.Do[model.Response[model.Event]](ctx, r.client, transport.Get("/events/"+url.PathEscape(id), nil)))
}

func (r *Remote) GetUserBookings(ctx context.Context, userID string) model.Response[[]model.Booking] {
	return unwrap(client.Do[model.Response[[]model.Booking]](ctx, r.client, transport.Get("/bookings/user/"+url.PathEscape(userID), nil)))
}

func (r *Remote) CreateBooking(ctx context.Context, req model.BookingRequest) model.Response[model.Booking] {
	return unwrap(client.Do[model.Response[model.Booking]](ctx, r.client, transport.Post("/bookings", req)))
}

func (r *Remote) CheckHealth(ctx context.Context) model.Response[model.HealthStatus] {
	return unwrap(client.Do[model.Response[model.HealthStatus]](ctx, r.client, transport.Get("/health", nil)))
}

// unwrap flattens a transport-level envelope around a backend envelope.
func unwrap[T any](outer model.Response[model.Response[T]]) model.Response[T] {
	if !outer.Success {
		return model.Fail[T](outer.Error)
	}
	inner := outer.Data
	if !inner.Success {
		msg := inner.Error
		if msg == "" {
			msg = inner.Message
		}
		return model.Fail[T](msg)
	}
	inner.Error = ""
	return inner
}
