package offline

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

//go:embed data/events.json
var bundledEvents []byte

// EventSource supplies the events served while the backend is unavailable.
type EventSource interface {
	List(ctx context.Context) ([]model.Event, error)
}

// StaticSource serves a fixed list of events.
type StaticSource struct {
	events []model.Event
}

// NewStaticSource returns a source backed by events.
func NewStaticSource(events []model.Event) *StaticSource {
	return &StaticSource{events: events}
}

func (s *StaticSource) List(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

var (
	bundledOnce   sync.Once
	bundledSource *StaticSource
	bundledErr    error
)

// Bundled returns the dataset shipped with the client. It is decoded once.
func Bundled() (*StaticSource, error) {
	bundledOnce.Do(func() {
		var events []model.Event
		if err := json.Unmarshal(bundledEvents, &events); err != nil {
			bundledErr = fmt.Errorf("decoding bundled events: %w", err)
			return
		}
		bundledSource = NewStaticSource(events)
	})
	return bundledSource, bundledErr
}

// MustBundled is Bundled for callers that treat a broken embedded dataset as a build defect.
func MustBundled() *StaticSource {
	s, err := Bundled()
	if err != nil {
		panic(err)
	}
	return s
}
