package offline

import (
	"context"
	"errors"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

var ErrNoEvents = errors.New("no offline events available")

// Chain tries each source in order and returns the first non-empty list.
// A cached snapshot placed before the bundled dataset lets the offline path
// serve the last events actually seen online.
type Chain []EventSource

func (c Chain) List(ctx context.Context) ([]model.Event, error) {
	var errs []error
	for _, s := range c {
		if s == nil {
			continue
		}
		events, err := s.List(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(events) > 0 {
			return events, nil
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrNoEvents}, errs...)...)
	}
	return []model.Event{}, nil
}
