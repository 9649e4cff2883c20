package main

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Heuristic date/time extraction. These are the safety net when the oracle
// is silent or returns "null" for a field, so both functions are total:
// they always return a value and never fail, whatever the input text.

var (
	isoDateRe = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	usDateRe  = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	cjkDateRe = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)

	clockRe     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	morningRe   = regexp.MustCompile(`上午\s*(\d{1,2})[點:]`)
	afternoonRe = regexp.MustCompile(`下午\s*(\d{1,2})[點:]`)
	cjkHourRe   = regexp.MustCompile(`(\d{1,2})點`)
)

// receivedAtLayouts covers the timestamp shapes the mailbox produces plus
// common fallbacks for hand-fed input.
var receivedAtLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ExtractDate derives a best-effort YYYY-MM-DD date from free text.
// Pattern precedence: YYYY-M-D, then M-D-YYYY, then M月D日 (current year).
// When no pattern matches, the message's own timestamp is used; when that
// is unparsable too, the current date wins.
func ExtractDate(text, receivedAt string, now time.Time) string {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := validDate(m[1], m[2], m[3]); ok {
			return d
		}
	}
	if m := usDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := validDate(m[3], m[1], m[2]); ok {
			return d
		}
	}
	if m := cjkDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := validDate(strconv.Itoa(now.Year()), m[1], m[2]); ok {
			return d
		}
	}
	for _, layout := range receivedAtLayouts {
		if ts, err := time.Parse(layout, receivedAt); err == nil {
			return ts.In(fixedZone).Format("2006-01-02")
		}
	}
	return now.In(fixedZone).Format("2006-01-02")
}

// ExtractTime derives a best-effort HH:MM time from free text, or "" when
// nothing matches (the caller treats that as all-day). Precedence: a plain
// H:MM clock, then 上午/下午 prefixed hours, then a bare H點 hour. The
// prefixed forms are checked before the bare 點 rule so the PM offset is
// not lost to it.
func ExtractTime(text string) string {
	if m := clockRe.FindStringSubmatch(text); m != nil {
		if h, min, ok := validClock(m[1], m[2]); ok {
			return fmt.Sprintf("%02d:%02d", h, min)
		}
	}
	if m := morningRe.FindStringSubmatch(text); m != nil {
		if h, _, ok := validClock(m[1], "0"); ok {
			return fmt.Sprintf("%02d:00", h)
		}
	}
	if m := afternoonRe.FindStringSubmatch(text); m != nil {
		if h, _, ok := validClock(m[1], "0"); ok {
			return fmt.Sprintf("%02d:00", h%12+12)
		}
	}
	if m := cjkHourRe.FindStringSubmatch(text); m != nil {
		if h, _, ok := validClock(m[1], "0"); ok {
			return fmt.Sprintf("%02d:00", h)
		}
	}
	return ""
}

func validDate(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); reject those.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func validClock(hour, minute string) (int, int, bool) {
	h, _ := strconv.Atoi(hour)
	min, _ := strconv.Atoi(minute)
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return 0, 0, false
	}
	return h, min, true
}
