package schedule

import (
	"time"

	"github.com/cyp0633/schedcfg/locale"
)

// cursor is the working state of a recurring resolution: the calendar day
// being tried and the instant an occurrence has to be strictly later than.
type cursor struct {
	date  time.Time
	after time.Time
}

// seed starts from the reference date, moved forward to the start limit if
// it comes first. A clamped cursor accepts the start instant itself.
func seed(cfg RecurrenceConfig) cursor {
	if start, clamped := clampToStart(cfg.CurrentDate, cfg.DateLimits); clamped {
		return cursor{date: start, after: start.Add(-time.Nanosecond)}
	}
	return cursor{date: cfg.CurrentDate, after: cfg.CurrentDate}
}

// passed reports whether t is not a valid next occurrence.
func (c cursor) passed(t time.Time) bool { return !t.After(c.after) }

// advanceOnce applies the time of day to the current unit and, if that
// moment has already passed, to the unit reached by advance.
func (c cursor) advanceOnce(cfg RecurrenceConfig, advance func(time.Time) time.Time) time.Time {
	next := applyTimeOfDay(cfg, c.date, c.after)
	if !c.passed(next) {
		return next
	}
	return applyTimeOfDay(cfg, advance(c.date), c.after)
}

// nextRecurring computes the next occurrence of a validated recurring
// configuration and checks it against the date limits.
func nextRecurring(cfg RecurrenceConfig, cal locale.Calendar) (time.Time, error) {
	c := seed(cfg)
	step := max(cfg.OccurrencyPeriod.MustGet(), 1)

	var next time.Time
	switch cfg.Period.MustGet() {
	case Daily:
		next = c.advanceOnce(cfg, func(t time.Time) time.Time { return t.AddDate(0, 0, step) })
	case Weekly:
		if len(cfg.WeeklyDays) == 0 {
			next = c.advanceOnce(cfg, func(t time.Time) time.Time { return addWeeks(t, step) })
		} else {
			next = c.nextWeekday(cfg, step, cal)
		}
	case Monthly:
		next = c.advanceOnce(cfg, func(t time.Time) time.Time { return addMonths(t, step) })
	case Yearly:
		next = c.advanceOnce(cfg, func(t time.Time) time.Time { return addYears(t, step) })
	}

	if !withinLimits(next, cfg.DateLimits) {
		return time.Time{}, newError(OutOfLimits, FieldExecutionDate, "next occurrence %s is outside the date limits",
			next.Format(time.DateTime))
	}
	return next, nil
}

// applyTimeOfDay returns the occurrence on date's day. A fixed hour is used
// as is. Otherwise ticks run from the window start in frequency steps and
// the first tick later than after is returned; a tick past the window end
// saturates at the window end.
func applyTimeOfDay(cfg RecurrenceConfig, date, after time.Time) time.Time {
	if hour, ok := cfg.DailyScheduleHour.Get(); ok {
		return hour.On(date)
	}

	step := frequencyStep(cfg.DailyFrequency.MustGet(), cfg.DailyFrequencyPeriod.MustGet())
	tick := windowStart(date, cfg.DailyLimits)
	end := windowEnd(date, cfg.DailyLimits)

	if tick.After(after) {
		return tick
	}
	n := after.Sub(tick)/step + 1
	tick = tick.Add(n * step)
	if tick.After(end) {
		return end
	}
	return tick
}

// frequencyStep converts a frequency and its period into a duration. A zero
// period steps by one unit; anything longer than a day behaves like a day.
func frequencyStep(freq Frequency, period int) time.Duration {
	unit := freq.Unit()
	n := time.Duration(max(period, 1))
	if limit := 24 * time.Hour / unit; n > limit {
		n = limit
	}
	return n * unit
}
