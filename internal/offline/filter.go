package offline

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// FilterEvents applies filters the way the backend does: category matches
// exactly, city matches ignoring case, and search is a case-insensitive
// substring of the title, description or venue city.
func FilterEvents(events []model.Event, filters *model.EventFilters) []model.Event {
	out := make([]model.Event, 0, len(events))
	if filters.IsZero() {
		return append(out, events...)
	}

	fold := cases.Fold()
	city := fold.String(filters.City)
	search := fold.String(filters.Search)

	for _, e := range events {
		if filters.Category != "" && e.Category != filters.Category {
			continue
		}
		if filters.City != "" && fold.String(e.Venue.City) != city {
			continue
		}
		if filters.Search != "" &&
			!strings.Contains(fold.String(e.Title), search) &&
			!strings.Contains(fold.String(e.Description), search) &&
			!strings.Contains(fold.String(e.Venue.City), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}
