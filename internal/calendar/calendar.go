// Package calendar implements the four record-keeping operations over the
// event store: booking, availability lookup, cancellation and the daily
// report. Operations return typed results and *OpError failures; rendering
// to display strings happens separately in render.go.
package calendar

import (
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"calkeep/internal/domain"
	"calkeep/internal/store"
)

// Operation names, shared with the dispatcher.
const (
	OpBook         = "book_event"
	OpAvailability = "check_availability"
	OpCancel       = "cancel_event"
	OpReport       = "generate_daily_report"
)

// dateLayout is the strict format for the date argument of availability
// and report queries. Event timestamps themselves are parsed permissively.
const dateLayout = "2006-01-02"

type Service struct {
	store *store.Store
	log   *slog.Logger
	newID func() string
}

func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, log: logger, newID: uuid.NewString}
}

type BookRequest struct {
	Summary     string
	StartTime   string
	EndTime     string
	Description string
	Location    string
	Attendees   []string
}

// Book parses both timestamps permissively, appends a new event with a
// fresh id and saves the collection. End is not validated against Start.
func (s *Service) Book(req BookRequest) (domain.Event, error) {
	start, err := dateparse.ParseAny(req.StartTime)
	if err != nil {
		return domain.Event{}, opErr(OpBook, KindParse, "start_time %q: %v", req.StartTime, err)
	}
	end, err := dateparse.ParseAny(req.EndTime)
	if err != nil {
		return domain.Event{}, opErr(OpBook, KindParse, "end_time %q: %v", req.EndTime, err)
	}

	events, err := s.store.Load()
	if err != nil {
		return domain.Event{}, opErr(OpBook, KindStorage, "%v", err)
	}
	attendees := req.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	ev := domain.Event{
		ID:          s.newID(),
		Summary:     req.Summary,
		Location:    req.Location,
		Description: req.Description,
		Start:       start.Format(time.RFC3339),
		End:         end.Format(time.RFC3339),
		Attendees:   attendees,
	}
	if err := s.store.Save(append(events, ev)); err != nil {
		return domain.Event{}, opErr(OpBook, KindStorage, "%v", err)
	}
	s.log.Debug("event booked", "id", ev.ID, "summary", ev.Summary, "start", ev.Start)
	return ev, nil
}

type BusyEvent struct {
	Event domain.Event
	Start time.Time
}

type Availability struct {
	Date      string
	StartTime string
	EndTime   string
	Busy      []BusyEvent
}

// Availability computes the busy events overlapping the query window. The
// window is [date+startTime, date+endTime] when both bounds are given,
// otherwise the full calendar day of date.
func (s *Service) Availability(date, startTime, endTime string) (Availability, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Availability{}, opErr(OpAvailability, KindParse, "date %q: %v", date, err)
	}

	window := domain.DayWindow(day)
	timed := startTime != "" && endTime != ""
	if timed {
		window.Min, err = dateparse.ParseAny(date + " " + startTime)
		if err != nil {
			return Availability{}, opErr(OpAvailability, KindParse, "start_time %q: %v", startTime, err)
		}
		window.Max, err = dateparse.ParseAny(date + " " + endTime)
		if err != nil {
			return Availability{}, opErr(OpAvailability, KindParse, "end_time %q: %v", endTime, err)
		}
	}

	events, err := s.store.Load()
	if err != nil {
		return Availability{}, opErr(OpAvailability, KindStorage, "%v", err)
	}
	result := Availability{Date: date, Busy: []BusyEvent{}}
	if timed {
		result.StartTime, result.EndTime = startTime, endTime
	}
	for _, ev := range events {
		start, end, err := eventInterval(ev)
		if err != nil {
			return Availability{}, opErr(OpAvailability, KindParse, "event %s: %v", ev.ID, err)
		}
		if window.Overlaps(start, end) {
			result.Busy = append(result.Busy, BusyEvent{Event: ev, Start: start})
		}
	}
	return result, nil
}

type CancelResult struct {
	// Removed is the canceled event, nil when nothing was removed.
	Removed *domain.Event
	// Matches holds every candidate when a summary lookup is ambiguous;
	// in that case nothing is removed and the caller must retry by id.
	Matches []domain.Event
	// ByID records which lookup path ran, for rendering.
	ByID      bool
	Requested string
}

// Cancel removes an event by exact id, or by case-insensitive substring
// match on the summary when the match is unique. The date argument is
// accepted but not used to filter candidates, matching the source system;
// whether it was meant to is an open question.
func (s *Service) Cancel(eventID, eventSummary, date string) (CancelResult, error) {
	_ = date

	if eventID == "" && eventSummary == "" {
		return CancelResult{}, opErr(OpCancel, KindArgument, "Please provide either event_id or event_summary")
	}
	events, err := s.store.Load()
	if err != nil {
		return CancelResult{}, opErr(OpCancel, KindStorage, "%v", err)
	}

	if eventID != "" {
		kept := make([]domain.Event, 0, len(events))
		var removed *domain.Event
		for _, ev := range events {
			if ev.ID == eventID && removed == nil {
				r := ev
				removed = &r
				continue
			}
			kept = append(kept, ev)
		}
		if removed == nil {
			return CancelResult{}, opErr(OpCancel, KindLookup, "No event with ID %s found", eventID)
		}
		if err := s.store.Save(kept); err != nil {
			return CancelResult{}, opErr(OpCancel, KindStorage, "%v", err)
		}
		s.log.Debug("event canceled", "id", eventID)
		return CancelResult{Removed: removed, ByID: true, Requested: eventID}, nil
	}

	var matches []domain.Event
	needle := strings.ToLower(eventSummary)
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Summary), needle) {
			matches = append(matches, ev)
		}
	}
	switch len(matches) {
	case 0:
		return CancelResult{}, opErr(OpCancel, KindLookup, "No event found with summary '%s'", eventSummary)
	case 1:
		target := matches[0]
		kept := make([]domain.Event, 0, len(events)-1)
		for _, ev := range events {
			if ev.ID != target.ID {
				kept = append(kept, ev)
			}
		}
		if err := s.store.Save(kept); err != nil {
			return CancelResult{}, opErr(OpCancel, KindStorage, "%v", err)
		}
		s.log.Debug("event canceled", "id", target.ID, "summary", target.Summary)
		return CancelResult{Removed: &target, Requested: eventSummary}, nil
	default:
		return CancelResult{Matches: matches, Requested: eventSummary}, nil
	}
}

type ReportEntry struct {
	Event   domain.Event
	Start   time.Time
	End     time.Time
	Minutes int
}

type Report struct {
	Day          time.Time
	Entries      []ReportEntry
	TotalMinutes int
}

// DailyReport selects every event intersecting the full day of date and
// totals the meeting minutes.
func (s *Service) DailyReport(date string) (Report, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Report{}, opErr(OpReport, KindParse, "date %q: %v", date, err)
	}
	events, err := s.store.Load()
	if err != nil {
		return Report{}, opErr(OpReport, KindStorage, "%v", err)
	}

	window := domain.DayWindow(day)
	report := Report{Day: day}
	var total time.Duration
	for _, ev := range events {
		start, end, err := eventInterval(ev)
		if err != nil {
			return Report{}, opErr(OpReport, KindParse, "event %s: %v", ev.ID, err)
		}
		if !window.Overlaps(start, end) {
			continue
		}
		d := end.Sub(start)
		report.Entries = append(report.Entries, ReportEntry{Event: ev, Start: start, End: end, Minutes: int(d.Minutes())})
		total += d
	}
	// Per-entry minutes are truncated for display, but the total is
	// truncated only once, so sub-minute events still add up.
	report.TotalMinutes = int(total.Minutes())
	return report, nil
}

func eventInterval(ev domain.Event) (time.Time, time.Time, error) {
	start, err := dateparse.ParseAny(ev.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateparse.ParseAny(ev.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
