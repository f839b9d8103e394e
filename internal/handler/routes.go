package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fakhrymubarak/eventsphere-api/internal/metrics"
)

// NewRouter registers the backend routes under /api, plus /metrics.
// mw wraps the /api subtree, e.g. with rate limiting; it may be nil.
func NewRouter(h *EventsHandler, mw mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	if mw != nil {
		api.Use(mw)
	}
	api.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	api.HandleFunc("/events", h.HandleListEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", h.HandleGetEvent).Methods(http.MethodGet)
	api.HandleFunc("/bookings/user/{userId}", h.HandleUserBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.HandleCreateBooking).Methods(http.MethodPost)

	return router
}
