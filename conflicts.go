package main

import (
	"context"
	"log"
	"time"
)

// Calendar is the external calendar capability the pipeline consumes.
type Calendar interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
	InsertEvent(ctx context.Context, ev CalendarEvent) (string, error)
	DeleteEvent(ctx context.Context, id string) error
}

// ResolveConflicts checks every accepted item against the calendar for the
// whole suggested day. Items sharing a day with at least one existing
// event move to pending with the colliding entries attached. Conflict
// detection is advisory: a lookup failure leaves the item matched.
func ResolveConflicts(ctx context.Context, cal Calendar, accepted []AcceptedItem) ([]AcceptedItem, []ConflictItem) {
	var matched []AcceptedItem
	var pending []ConflictItem

	for _, item := range accepted {
		from, to, err := DayWindow(item.SuggestedDate)
		if err != nil {
			log.Printf("conflicts bad date message=%s date=%q err=%v", item.Message.ID, item.SuggestedDate, err)
			matched = append(matched, item)
			continue
		}

		events, err := cal.ListEvents(ctx, from, to)
		if err != nil {
			// Fail open: without an answer from the calendar the item
			// stays matched.
			log.Printf("conflicts lookup error message=%s date=%s err=%v", item.Message.ID, item.SuggestedDate, err)
			matched = append(matched, item)
			continue
		}

		if len(events) == 0 {
			matched = append(matched, item)
			continue
		}

		conflict := ConflictItem{AcceptedItem: item}
		for _, ev := range events {
			conflict.ConflictEvents = append(conflict.ConflictEvents, ConflictEvent{
				Summary: ev.Summary,
				Start:   ev.Start.In(fixedZone).Format("2006-01-02T15:04"),
			})
		}
		log.Printf("conflicts found message=%s date=%s events=%d", item.Message.ID, item.SuggestedDate, len(events))
		pending = append(pending, conflict)
	}

	return matched, pending
}
