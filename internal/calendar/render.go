package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rendering converts typed operation results and errors into the display
// strings the front end prints. Nothing below this file should build user
// facing text.

const (
	okMark   = "✅"
	failMark = "❌"

	reportSeparator = 60
	maxSummaryWidth = 40
)

// Booked renders the booking confirmation.
func Booked(id string) string {
	return fmt.Sprintf("%s Event booked. ID: %s", okMark, id)
}

func (a Availability) Render() string {
	if len(a.Busy) == 0 {
		msg := fmt.Sprintf("%s You're free on %s", okMark, a.Date)
		if a.StartTime != "" {
			msg += fmt.Sprintf(" from %s to %s", a.StartTime, a.EndTime)
		}
		return msg
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📅 You have %d meeting(s) on %s:\n", len(a.Busy), a.Date)
	for _, busy := range a.Busy {
		fmt.Fprintf(&b, "• %s at %s (ID: %s)\n", summaryOr(busy.Event.Summary, "Untitled"), busy.Start.Format("15:04"), busy.Event.ID)
	}
	return b.String()
}

func (r CancelResult) Render() string {
	switch {
	case r.Removed != nil && r.ByID:
		return fmt.Sprintf("%s Event %s canceled", okMark, r.Requested)
	case r.Removed != nil:
		return fmt.Sprintf("%s Event '%s' canceled", okMark, r.Removed.Summary)
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d events matching '%s':\n", len(r.Matches), r.Requested)
		for i, ev := range r.Matches {
			fmt.Fprintf(&b, "%d. %s (ID: %s)\n", i+1, ev.Summary, ev.ID)
		}
		b.WriteString("Please specify the event_id to cancel a specific event.")
		return b.String()
	}
}

func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 DAILY CALENDAR REPORT - %s\n", r.Day.Format("Monday, January 02, 2006"))
	b.WriteString(strings.Repeat("=", reportSeparator) + "\n\n")

	if len(r.Entries) == 0 {
		b.WriteString("No events scheduled for this day.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total Events: %d\n\n", len(r.Entries))

	width := 0
	for _, e := range r.Entries {
		if w := runewidth.StringWidth(displaySummary(e)); w > width {
			width = w
		}
	}
	if width > maxSummaryWidth {
		width = maxSummaryWidth
	}
	for i, e := range r.Entries {
		summary := runewidth.Truncate(displaySummary(e), maxSummaryWidth, "…")
		fmt.Fprintf(&b, "%2d. %s  %s - %s  %4d min\n",
			i+1,
			runewidth.FillRight(summary, width),
			e.Start.Format("15:04"),
			e.End.Format("15:04"),
			e.Minutes,
		)
	}

	b.WriteString("\n" + strings.Repeat("=", reportSeparator) + "\n")
	fmt.Fprintf(&b, "Total Meeting Time: %dh %dm\n", r.TotalMinutes/60, r.TotalMinutes%60)
	return b.String()
}

// opPhrases are the verb phrases used in wrapped failure messages.
var opPhrases = map[string]string{
	OpBook:         "booking event",
	OpAvailability: "checking availability",
	OpCancel:       "canceling event",
	OpReport:       "generating report",
}

// RenderError converts any operation error into the display failure string.
// Lookup and argument failures carry user-facing text directly; parse and
// storage failures are wrapped with the operation's verb phrase.
func RenderError(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case KindLookup, KindArgument:
			return failMark + " " + oe.Err.Error()
		}
		if phrase, ok := opPhrases[oe.Op]; ok {
			return fmt.Sprintf("%s Error %s: %v", failMark, phrase, oe.Err)
		}
	}
	return failMark + " " + err.Error()
}

func displaySummary(e ReportEntry) string {
	return summaryOr(e.Event.Summary, "Untitled Event")
}

func summaryOr(summary, fallback string) string {
	if summary == "" {
		return fallback
	}
	return summary
}
