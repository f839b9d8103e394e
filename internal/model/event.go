package model

// Venue is where an event takes place.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city"`
}

type Event struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Date             string   `json:"date"`
	Time             string   `json:"time,omitempty"`
	Price            float64  `json:"price"`
	Image            string   `json:"image,omitempty"`
	Venue            Venue    `json:"venue"`
	Organizer        string   `json:"organizer,omitempty"`
	AvailableTickets int      `json:"availableTickets"`
	Tags             []string `json:"tags,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
}

// EventFilters narrows an event listing. Empty fields are not applied.
type EventFilters struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
	City     string `json:"city,omitempty"`
}

// IsZero reports whether no filter is set.
func (f *EventFilters) IsZero() bool {
	return f == nil || (f.Category == "" && f.Search == "" && f.City == "")
}

// Query returns the filters as query parameters. Empty values are kept here
// and dropped when the URL is built.
func (f *EventFilters) Query() map[string]string {
	if f == nil {
		return nil
	}
	return map[string]string{
		"category": f.Category,
		"search":   f.Search,
		"city":     f.City,
	}
}

// HealthStatus is the body of the backend health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
