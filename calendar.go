package main

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

// GoogleCalendar implements Calendar on the Google Calendar API.
type GoogleCalendar struct {
	srv *calendar.Service
}

func NewGoogleCalendar(ctx context.Context, credentialsPath, tokenPath string) (*GoogleCalendar, error) {
	client, err := googleHTTPClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating Calendar service: %w", err)
	}
	return &GoogleCalendar{srv: srv}, nil
}

func (c *GoogleCalendar) ListEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	list, err := c.srv.Events.List(primaryCalendar).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	var events []CalendarEvent
	for _, item := range list.Items {
		ev := CalendarEvent{ID: item.Id, Summary: item.Summary}
		if item.Start != nil {
			ev.Start = parseEventTime(item.Start.DateTime, item.Start.Date)
		}
		if item.End != nil {
			ev.End = parseEventTime(item.End.DateTime, item.End.Date)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *GoogleCalendar) InsertEvent(ctx context.Context, ev CalendarEvent) (string, error) {
	entry := &calendar.Event{
		Summary: ev.Summary,
	}
	if ev.Start.IsZero() {
		return "", fmt.Errorf("event start is required")
	}
	if ev.End.IsZero() {
		ev.End = ev.Start.Add(time.Hour)
	}
	entry.Start = &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)}
	entry.End = &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339)}

	created, err := c.srv.Events.Insert(primaryCalendar, entry).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}
	return created.Id, nil
}

func (c *GoogleCalendar) DeleteEvent(ctx context.Context, id string) error {
	if err := c.srv.Events.Delete(primaryCalendar, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}

// parseEventTime handles both timed (dateTime) and all-day (date) entries.
func parseEventTime(dateTime, date string) time.Time {
	if dateTime != "" {
		if t, err := time.Parse(time.RFC3339, dateTime); err == nil {
			return t
		}
	}
	if date != "" {
		if t, err := time.ParseInLocation("2006-01-02", date, fixedZone); err == nil {
			return t
		}
	}
	return time.Time{}
}
