/*
Package schedule resolves the next execution of a schedule configuration and
describes it in plain language.

# Basic Usage

	r := schedule.NewResolver()
	event, err := r.Resolve(schedule.RecurrenceConfig{
		CurrentDate:       time.Now(),
		Type:              schedule.Recurring,
		Period:            mo.Some(schedule.Weekly),
		OccurrencyPeriod:  mo.Some(2),
		WeeklyDays:        []time.Weekday{time.Monday, time.Thursday},
		DailyScheduleHour: mo.Some(schedule.NewTimeOfDay(9, 30, 0)),
	})
	if err != nil {
		var verr *schedule.Error
		if errors.As(err, &verr) {
			log.Printf("rejected %s: %s", verr.Field, verr.Kind)
		}
		return
	}
	fmt.Println(event.ExecutionDate, event.ExecutionDescription)

# Recurrence

A one-time schedule returns its ScheduleDate. A recurring schedule starts
from CurrentDate (moved forward to the start of DateLimits when earlier) and
applies the time of day to the current day, week, month or year; if that
moment has already passed, it moves OccurrencyPeriod units ahead.

The time of day is either DailyScheduleHour, or the first tick of
DailyFrequency x DailyFrequencyPeriod inside DailyLimits that is later than
the reference. A tick that would overrun the window end stops at the window
end.

Weekly schedules with WeeklyDays snap to the next selected weekday. Weeks
start on the first day of the locale calendar, so the wrap into the next
active week differs between Sunday-first and Monday-first locales.

# Errors

Every rejection is an *Error carrying an ErrorKind and the offending field.
A computed execution outside DateLimits is reported as OutOfLimits, never
clamped.
*/
package schedule
