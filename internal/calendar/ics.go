// Package calendar exports extracted events as an iCalendar (.ics) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sportify/internal/clock"
	"github.com/pfrederiksen/sportify/internal/event"
)

// EventDuration is the assumed length of a broadcast; the schedule lists start times only
const EventDuration = 2 * time.Hour

// GenerateICS generates an iCalendar document with one VEVENT per event.
// Event times are in the destination timezone; the schedule itself is in UTC,
// so offset is subtracted again to place each event on day.
func GenerateICS(events []*event.Event, day time.Time, offset time.Duration, name string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Sportify//sportify//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))
	}

	stamp := formatICSTime(time.Now().UTC())
	date := day.UTC()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	for _, evt := range events {
		start, ok := startTime(evt.Time, midnight, offset)
		if !ok {
			continue
		}

		ics.WriteString("BEGIN:VEVENT\r\n")

		// UID - unique identifier for the event
		ics.WriteString(fmt.Sprintf("UID:%s@sportify\r\n", evt.ID))
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(EventDuration))))

		summary := evt.Title()
		if evt.League != "" && evt.League != summary {
			summary = fmt.Sprintf("%s: %s", evt.League, summary)
		}
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

		if len(evt.Channels) > 0 {
			description := "Channels: " + strings.Join(evt.Channels, ", ")
			ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
		}

		ics.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", escapeICS(evt.Sport)))
		ics.WriteString("STATUS:CONFIRMED\r\n")
		ics.WriteString("TRANSP:TRANSPARENT\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// startTime undoes the destination offset to get the UTC start on the schedule day
func startTime(converted string, midnight time.Time, offset time.Duration) (time.Time, bool) {
	source, err := clock.NewConverter(-offset).Convert(converted)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(clock.Layout, source)
	if err != nil {
		return time.Time{}, false
	}
	return midnight.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
