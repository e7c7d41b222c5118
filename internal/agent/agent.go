// Package agent dispatches parsed directives to the calendar operations.
package agent

import (
	"fmt"
	"log/slog"
	"strings"

	"calkeep/internal/calendar"
	"calkeep/internal/directive"
)

// Usage is returned whenever a line carries no recognizable directive.
const Usage = "Please call functions using the format:\n" +
	`CALL_FUNCTION: book_event(summary="Meeting", start_time="2026-01-02T14:00:00", end_time="2026-01-02T15:00:00")` + "\n\n" +
	"Available functions: book_event, check_availability, cancel_event, generate_daily_report"

type Agent struct {
	cal *calendar.Service
	log *slog.Logger
}

func New(cal *calendar.Service, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{cal: cal, log: logger}
}

// Run parses one input line and executes the named operation. Every
// failure comes back as a display string; Run never returns an error.
func (a *Agent) Run(input string) string {
	call, err := directive.Parse(input)
	if err != nil {
		a.log.Debug("no directive recognized", "error", err)
		return Usage
	}
	a.log.Debug("dispatching directive", "function", call.Name)

	switch call.Name {
	case calendar.OpBook:
		return a.bookEvent(call.Args)
	case calendar.OpAvailability:
		return a.checkAvailability(call.Args)
	case calendar.OpCancel:
		return a.cancelEvent(call.Args)
	case calendar.OpReport:
		return a.generateDailyReport(call.Args)
	default:
		return "❌ Unknown function: " + call.Name
	}
}

func (a *Agent) bookEvent(args map[string]*string) string {
	if msg, ok := checkArgs(calendar.OpBook, args,
		[]string{"summary", "start_time", "end_time"},
		[]string{"description", "location", "attendees"}); !ok {
		return msg
	}
	req := calendar.BookRequest{
		Summary:     strArg(args, "summary"),
		StartTime:   strArg(args, "start_time"),
		EndTime:     strArg(args, "end_time"),
		Description: strArg(args, "description"),
		Location:    strArg(args, "location"),
	}
	// The comma-split directive grammar cannot carry a list, so a single
	// attendees value binds as a one-element sequence.
	if att := strArg(args, "attendees"); att != "" {
		req.Attendees = []string{att}
	}
	ev, err := a.cal.Book(req)
	if err != nil {
		return calendar.RenderError(err)
	}
	return calendar.Booked(ev.ID)
}

func (a *Agent) checkAvailability(args map[string]*string) string {
	if msg, ok := checkArgs(calendar.OpAvailability, args,
		[]string{"date"},
		[]string{"start_time", "end_time"}); !ok {
		return msg
	}
	avail, err := a.cal.Availability(strArg(args, "date"), strArg(args, "start_time"), strArg(args, "end_time"))
	if err != nil {
		return calendar.RenderError(err)
	}
	return avail.Render()
}

func (a *Agent) cancelEvent(args map[string]*string) string {
	if msg, ok := checkArgs(calendar.OpCancel, args,
		nil,
		[]string{"event_id", "event_summary", "date"}); !ok {
		return msg
	}
	res, err := a.cal.Cancel(strArg(args, "event_id"), strArg(args, "event_summary"), strArg(args, "date"))
	if err != nil {
		return calendar.RenderError(err)
	}
	return res.Render()
}

func (a *Agent) generateDailyReport(args map[string]*string) string {
	if msg, ok := checkArgs(calendar.OpReport, args, []string{"date"}, nil); !ok {
		return msg
	}
	report, err := a.cal.DailyReport(strArg(args, "date"))
	if err != nil {
		return calendar.RenderError(err)
	}
	return report.Render()
}

// checkArgs validates keyword binding: every provided key must be accepted
// by the operation and every required key must be present. Binding failures
// come back as display strings, consistent with the operation contract.
func checkArgs(op string, args map[string]*string, required, optional []string) (string, bool) {
	accepted := make(map[string]bool, len(required)+len(optional))
	for _, k := range required {
		accepted[k] = true
	}
	for _, k := range optional {
		accepted[k] = true
	}
	for k := range args {
		if !accepted[k] {
			return fmt.Sprintf("❌ Invalid arguments for %s: unknown argument '%s'", op, k), false
		}
	}
	for _, k := range required {
		if _, ok := args[k]; !ok {
			return fmt.Sprintf("❌ Invalid arguments for %s: missing required argument '%s'", op, k), false
		}
	}
	return "", true
}

// strArg flattens an optional argument: absent and none both become "".
func strArg(args map[string]*string, key string) string {
	if v, ok := args[key]; ok && v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}
