package integrationtest

import (
	"net/http/httptest"

	"github.com/alicebob/miniredis/v2"

	"github.com/fakhrymubarak/eventsphere-api/internal/handler"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/offline"
)

var (
	miniRedisMock *miniredis.Miniredis
)

// liveEvents are served by the mock backend and absent from the bundled
// dataset, so their presence offline proves the snapshot was used.
func liveEvents() []model.Event {
	return []model.Event{
		{ID: "live-1", Title: "Rooftop Cinema", Category: "Film", Price: 300, AvailableTickets: 40, Venue: model.Venue{Name: "Skyline", City: "Mumbai"}},
		{ID: "live-2", Title: "Indie Fest", Category: "Music", Price: 900, AvailableTickets: 5, Venue: model.Venue{Name: "Dome", City: "Mumbai"}},
	}
}

func createMockRedisServer() {
	miniRedisMock = miniredis.NewMiniRedis()
	err := miniRedisMock.StartAddr(":16379")
	if err != nil {
		panic(err)
	}
}

func runMockBackend() *httptest.Server {
	events := liveEvents()
	router := handler.NewRouter(
		handler.NewEventsHandler(offline.NewStaticSource(events), handler.NewBookingStore(events)), nil)
	return httptest.NewServer(router)
}
