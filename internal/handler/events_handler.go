// Package handler implements a local stand-in for the EventSphere backend,
// serving the bundled events and keeping bookings in memory.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/offline"
)

type EventsHandler struct {
	Events   offline.EventSource
	Bookings *BookingStore
}

func NewEventsHandler(events offline.EventSource, bookings *BookingStore) *EventsHandler {
	return &EventsHandler{Events: events, Bookings: bookings}
}

func writeJSONResponse[T any](w http.ResponseWriter, statusCode int, data model.Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	resp := model.Fail[any](msg)
	resp.Message = "Error"
	writeJSONResponse(w, statusCode, resp)
}

func (h *EventsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, model.OK(model.HealthStatus{
		Status:    "ok",
		Service:   "eventsphere-mock",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))
}

func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	q := r.URL.Query()
	filters := &model.EventFilters{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		City:     q.Get("city"),
	}
	matched := offline.FilterEvents(events, filters)
	for i := range matched {
		matched[i].AvailableTickets = h.Bookings.Remaining(matched[i].ID)
	}
	writeJSONResponse(w, http.StatusOK, model.OKList(matched))
}

func (h *EventsHandler) findEvent(r *http.Request, id string) (model.Event, bool, error) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		return model.Event{}, false, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, true, nil
		}
	}
	return model.Event{}, false, nil
}

func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, found, err := h.findEvent(r, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, offline.MsgEventNotFound)
		return
	}
	event.AvailableTickets = h.Bookings.Remaining(event.ID)
	writeJSONResponse(w, http.StatusOK, model.OK(event))
}

func (h *EventsHandler) HandleUserBookings(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, model.OKList(h.Bookings.ForUser(mux.Vars(r)["userId"])))
}

func validateBooking(req model.BookingRequest) string {
	var missing []string
	if strings.TrimSpace(req.UserID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(req.EventID) == "" {
		missing = append(missing, "eventId")
	}
	if strings.TrimSpace(req.UserDetails.Email) == "" {
		missing = append(missing, "userDetails.email")
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	if req.Quantity < 1 {
		return "Quantity must be at least 1"
	}
	return ""
}

func (h *EventsHandler) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateBooking(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	event, found, err := h.findEvent(r, req.EventID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, offline.MsgEventNotFound)
		return
	}

	booking, err := h.Bookings.Create(event, req)
	switch {
	case errors.Is(err, ErrInsufficientTickets):
		writeError(w, http.StatusConflict, "Not enough tickets available")
		return
	case errors.Is(err, ErrEventNotFound):
		writeError(w, http.StatusNotFound, offline.MsgEventNotFound)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	resp := model.OK(booking)
	resp.Message = "Booking confirmed"
	writeJSONResponse(w, http.StatusCreated, resp)
}
