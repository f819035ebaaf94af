package schedule

import (
	"time"

	"github.com/cyp0633/schedcfg/locale"
)

type weekdaySet [7]bool

func newWeekdaySet(days []time.Weekday) weekdaySet {
	var set weekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			set[d] = true
		}
	}
	return set
}

// nextWeekday resolves a weekly schedule restricted to cfg.WeeklyDays. The
// cursor day is snapped to a selected weekday; if the time of day has
// already passed there, the snap is repeated from the following day. When
// that day opens a new week, its own selected days come first and no period
// is skipped.
func (c cursor) nextWeekday(cfg RecurrenceConfig, step int, cal locale.Calendar) time.Time {
	set := newWeekdaySet(cfg.WeeklyDays)
	first := cal.FirstDayOfWeek()

	date := set.snap(c.date, step, first)
	next := applyTimeOfDay(cfg, date, c.after)
	if !c.passed(next) {
		return next
	}

	date = set.snap(date.AddDate(0, 0, 1), step, first)
	return applyTimeOfDay(cfg, date, c.after)
}

// snap returns the nearest selected weekday on or after date within date's
// week. When the rest of the week has none, it wraps to the first selected
// weekday of the week step weeks later. Weeks start on first.
func (set weekdaySet) snap(date time.Time, step int, first time.Weekday) time.Time {
	pos := locale.Position(date.Weekday(), first)
	for p := pos; p < 7; p++ {
		if set[locale.WeekdayAt(p, first)] {
			return date.AddDate(0, 0, p-pos)
		}
	}

	target := addWeeks(startOfWeek(date, first), step)
	for p := 0; p < 7; p++ {
		if set[locale.WeekdayAt(p, first)] {
			return target.AddDate(0, 0, p)
		}
	}
	return date
}
