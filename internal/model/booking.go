package model

import "time"

type UserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	UserID      string      `json:"userId"`
	EventID     string      `json:"eventId"`
	Quantity    int         `json:"quantity"`
	UserDetails UserDetails `json:"userDetails"`
	TicketType  string      `json:"ticketType,omitempty"`
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	EventID     string        `json:"eventId"`
	Quantity    int           `json:"quantity"`
	TicketType  string        `json:"ticketType,omitempty"`
	TotalAmount float64       `json:"totalAmount"`
	Status      BookingStatus `json:"status"`
	UserDetails UserDetails   `json:"userDetails"`
	Event       *Event        `json:"event,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
