package schedule

import (
	"time"

	"github.com/samber/mo"
)

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func at(year, month, d, hour, minute int) time.Time {
	return time.Date(year, time.Month(month), d, hour, minute, 0, 0, time.UTC)
}

func hhmm(hour, minute int) TimeOfDay {
	return NewTimeOfDay(hour, minute, 0)
}

func limits(start, end time.Time) mo.Option[DateLimits] {
	return mo.Some(DateLimits{Start: mo.Some(start), End: mo.Some(end)})
}

func startingOn(start time.Time) mo.Option[DateLimits] {
	return mo.Some(DateLimits{Start: mo.Some(start)})
}

func window(start, end TimeOfDay) mo.Option[TimeLimits] {
	return mo.Some(TimeLimits{Start: mo.Some(start), End: mo.Some(end)})
}

// recurringAt builds a recurring configuration with a fixed hour.
func recurringAt(current time.Time, period PeriodType, every int, hour TimeOfDay) RecurrenceConfig {
	return RecurrenceConfig{
		CurrentDate:       current,
		Type:              Recurring,
		Period:            mo.Some(period),
		OccurrencyPeriod:  mo.Some(every),
		DailyScheduleHour: mo.Some(hour),
	}
}

// recurringEvery builds a recurring configuration with sub-daily ticks.
func recurringEvery(current time.Time, period PeriodType, every int, freq Frequency, step int) RecurrenceConfig {
	return RecurrenceConfig{
		CurrentDate:          current,
		Type:                 Recurring,
		Period:               mo.Some(period),
		OccurrencyPeriod:     mo.Some(every),
		DailyFrequency:       mo.Some(freq),
		DailyFrequencyPeriod: mo.Some(step),
	}
}
