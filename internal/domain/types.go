package domain

import "time"

// Event is a single calendar entry as stored in the backing file.
//
// Start and End are kept as the raw timestamp strings the event was created
// with (RFC 3339 for events we book ourselves). They are parsed on use, not
// on load, so a malformed timestamp can sit in the store and only surfaces
// as an error when an operation needs the value.
type Event struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees"`
}

// Window is an inclusive time range used for busy/overlap queries.
type Window struct {
	Min time.Time
	Max time.Time
}

// DayWindow returns the full-day window [00:00:00, 23:59:59] of day.
func DayWindow(day time.Time) Window {
	y, m, d := day.Date()
	return Window{
		Min: time.Date(y, m, d, 0, 0, 0, 0, day.Location()),
		Max: time.Date(y, m, d, 23, 59, 59, 0, day.Location()),
	}
}

// Overlaps reports whether [start, end] intersects the window. The test is
// inclusive at both ends: an event ending exactly at Window.Min still counts.
func (w Window) Overlaps(start, end time.Time) bool {
	return !start.After(w.Max) && !end.Before(w.Min)
}
