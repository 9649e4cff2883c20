package main

import (
	"context"
	"time"
)

// fakeOracle answers from a script: one response (or error) per call, the
// last entry repeating when the script runs out.
type fakeOracle struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if len(f.errs) > 0 {
		ei := i
		if ei >= len(f.errs) {
			ei = len(f.errs) - 1
		}
		if f.errs[ei] != nil {
			return "", f.errs[ei]
		}
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	ri := i
	if ri >= len(f.responses) {
		ri = len(f.responses) - 1
	}
	return f.responses[ri], nil
}

// fakeOracleFunc delegates straight to a function, for per-prompt logic.
type fakeOracleFunc func(ctx context.Context, prompt string) (string, error)

func (f fakeOracleFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type fakeMailbox struct {
	messages []Message
	err      error

	gotIntent string
	gotMax    int
}

func (f *fakeMailbox) FetchMessages(ctx context.Context, intent string, maxCount int) ([]Message, error) {
	f.gotIntent = intent
	f.gotMax = maxCount
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

// fakeCalendar serves events keyed by YYYY-MM-DD of the window start.
type fakeCalendar struct {
	eventsByDay map[string][]CalendarEvent
	listErr     error
	listCalls   int
}

func (f *fakeCalendar) ListEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.eventsByDay[from.In(fixedZone).Format("2006-01-02")], nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, ev CalendarEvent) (string, error) {
	return "fake-id", nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, id string) error {
	return nil
}
