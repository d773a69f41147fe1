// Package calendar собирает вложения iCalendar для писем-подтверждений записи.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	crlf = "\r\n"

	icsLocalLayout = "20060102T150405"
	icsUTCLayout   = "20060102T150405Z"
)

// AppointmentEvent данные события для ICS-вложения
type AppointmentEvent struct {
	AppointmentID   uuid.UUID
	BusinessName    string
	BusinessAddress string
	Start           time.Time
	End             time.Time
	CustomerName    string
	OrderNumber     string
	Notes           string
}

// BuildAppointmentICS собирает VCALENDAR с одним VEVENT для записи
// Время события пишется как floating local time, DTSTAMP — в UTC
func BuildAppointmentICS(event AppointmentEvent) []byte {
	uid := fmt.Sprintf("%s@appointme", event.AppointmentID)

	descLines := []string{
		fmt.Sprintf("Customer: %s", event.CustomerName),
	}
	if strings.TrimSpace(event.OrderNumber) != "" {
		descLines = append(descLines, fmt.Sprintf("Order #: %s", event.OrderNumber))
	}
	if strings.TrimSpace(event.Notes) != "" {
		descLines = append(descLines, fmt.Sprintf("Notes: %s", event.Notes))
	}

	escaped := make([]string, 0, len(descLines))
	for _, line := range descLines {
		escaped = append(escaped, escapeText(line))
	}
	description := strings.Join(escaped, "\\n")

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR" + crlf)
	b.WriteString("VERSION:2.0" + crlf)
	b.WriteString("PRODID:-//AppointMe//EN" + crlf)
	b.WriteString("CALSCALE:GREGORIAN" + crlf)
	b.WriteString("METHOD:PUBLISH" + crlf)

	b.WriteString("BEGIN:VEVENT" + crlf)
	b.WriteString("UID:" + uid + crlf)
	b.WriteString("DTSTAMP:" + time.Now().UTC().Format(icsUTCLayout) + crlf)
	b.WriteString("SUMMARY:" + escapeText(fmt.Sprintf("Appointment at %s", event.BusinessName)) + crlf)
	b.WriteString("DTSTART:" + event.Start.Format(icsLocalLayout) + crlf)
	b.WriteString("DTEND:" + event.End.Format(icsLocalLayout) + crlf)

	if strings.TrimSpace(event.BusinessAddress) != "" {
		b.WriteString("LOCATION:" + escapeText(event.BusinessAddress) + crlf)
	}
	if description != "" {
		b.WriteString("DESCRIPTION:" + description + crlf)
	}

	b.WriteString("END:VEVENT" + crlf)
	b.WriteString("END:VCALENDAR" + crlf)

	return []byte(b.String())
}

// escapeText экранирует спецсимволы по RFC 5545
func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return replacer.Replace(s)
}
