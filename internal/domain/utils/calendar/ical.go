package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

const productID = "-//NHU App//EN"

// ExportEventsToICS converts union events into an iCalendar (.ics) document.
// Every event gets a day and an hour reminder. Cancelled events are exported
// with the CANCELLED status so subscribed calendars drop them.
func ExportEventsToICS(events []entity.Event, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, event := range events {
		e := cal.AddEvent(fmt.Sprintf("%s@nhu-app", event.ID))

		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		e.SetModifiedAt(event.UpdatedAt)

		e.SetStartAt(event.StartDate)
		if !event.EndDate.IsZero() {
			e.SetEndAt(event.EndDate)
		} else {
			e.SetEndAt(event.StartDate.Add(time.Hour))
		}

		e.SetSummary(event.Title)
		e.SetDescription(event.Description)
		e.SetLocation(location(event))

		if event.Status == entity.EventCancelled {
			e.SetStatus(ics.ObjectStatusCancelled)
		} else {
			e.SetStatus(ics.ObjectStatusConfirmed)
		}
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Reminder: %s (tomorrow)", event.Title))

		hourAlarm := e.AddAlarm()
		hourAlarm.SetAction(ics.ActionDisplay)
		hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		hourAlarm.SetDescription(fmt.Sprintf("Reminder: %s (in one hour)", event.Title))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func ExportEventToICS(event entity.Event, now time.Time) ([]byte, error) {
	return ExportEventsToICS([]entity.Event{event}, now)
}

func location(event entity.Event) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{event.Venue, event.Location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
