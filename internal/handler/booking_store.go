package handler

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
)

// BookingStore keeps bookings and remaining ticket counts in memory.
type BookingStore struct {
	mu        sync.Mutex
	bookings  map[string][]model.Booking // userID -> bookings
	remaining map[string]int             // eventID -> tickets left
	now       func() time.Time
}

func NewBookingStore(events []model.Event) *BookingStore {
	remaining := make(map[string]int, len(events))
	for _, e := range events {
		remaining[e.ID] = e.AvailableTickets
	}
	return &BookingStore{
		bookings:  make(map[string][]model.Booking),
		remaining: remaining,
		now:       time.Now,
	}
}

// Create books req.Quantity tickets for event.
func (s *BookingStore) Create(event model.Event, req model.BookingRequest) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	left, ok := s.remaining[event.ID]
	if !ok {
		return model.Booking{}, ErrEventNotFound
	}
	if req.Quantity > left {
		return model.Booking{}, ErrInsufficientTickets
	}
	s.remaining[event.ID] = left - req.Quantity

	b := model.Booking{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		EventID:     event.ID,
		Quantity:    req.Quantity,
		TicketType:  req.TicketType,
		TotalAmount: event.Price * float64(req.Quantity),
		Status:      model.BookingStatusConfirmed,
		UserDetails: req.UserDetails,
		Event:       &event,
		CreatedAt:   s.now().UTC(),
	}
	s.bookings[req.UserID] = append(s.bookings[req.UserID], b)
	return b, nil
}

// ForUser returns the bookings of userID, oldest first.
func (s *BookingStore) ForUser(userID string) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, len(s.bookings[userID]))
	copy(out, s.bookings[userID])
	return out
}

// Remaining returns the tickets left for eventID.
func (s *BookingStore) Remaining(eventID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining[eventID]
}
