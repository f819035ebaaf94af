package schedule

import (
	"time"

	"github.com/samber/mo"

	"github.com/cyp0633/schedcfg/locale"
)

func startOfDay(t time.Time) time.Time {
	return Midnight.On(t)
}

// endOfDay is the last representable instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func addWeeks(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }

// addMonths moves t by n calendar months, clamping the day to the length of
// the target month (Jan 31 + 1 month is Feb 28 or 29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func addYears(t time.Time, n int) time.Time { return addMonths(t, 12*n) }

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// clampToStart moves t forward to the first instant of the start limit when
// t precedes it. It never moves t backward.
func clampToStart(t time.Time, limits mo.Option[DateLimits]) (time.Time, bool) {
	dl, ok := limits.Get()
	if !ok {
		return t, false
	}
	start, ok := dl.Start.Get()
	if !ok {
		return t, false
	}
	if s := startOfDay(start); t.Before(s) {
		return s, true
	}
	return t, false
}

// withinLimits reports whether t falls inside the inclusive date window.
func withinLimits(t time.Time, limits mo.Option[DateLimits]) bool {
	dl, ok := limits.Get()
	if !ok {
		return true
	}
	if start, ok := dl.Start.Get(); ok && t.Before(startOfDay(start)) {
		return false
	}
	if end, ok := dl.End.Get(); ok && t.After(endOfDay(end)) {
		return false
	}
	return true
}

func timeWindow(limits mo.Option[TimeLimits]) (TimeOfDay, TimeOfDay) {
	tl := limits.OrEmpty()
	return tl.Start.OrElse(Midnight), tl.End.OrElse(EndOfDay)
}

// windowStart is the first sub-daily tick on date's day.
func windowStart(date time.Time, limits mo.Option[TimeLimits]) time.Time {
	start, _ := timeWindow(limits)
	return start.On(date)
}

// windowEnd is the last instant a sub-daily tick may take on date's day.
func windowEnd(date time.Time, limits mo.Option[TimeLimits]) time.Time {
	_, end := timeWindow(limits)
	return end.On(date)
}

// startOfWeek is midnight of the first day of t's week.
func startOfWeek(t time.Time, first time.Weekday) time.Time {
	return startOfDay(t).AddDate(0, 0, -locale.Position(t.Weekday(), first))
}
