package schedule

import (
	"time"

	"github.com/samber/mo"
)

// ValidateBasic checks the fields every schedule needs. Inverted date limits
// are reported before anything else.
func ValidateBasic(cfg RecurrenceConfig) error {
	if err := validateDateLimits(cfg.DateLimits); err != nil {
		return err
	}

	if cfg.CurrentDate.IsZero() {
		return newError(MissingValue, FieldCurrentDate, "reference date is required")
	}
	if cfg.CurrentDate.Equal(MaxTime) {
		return newError(OutOfRange, FieldCurrentDate, "reference date cannot be the unbounded sentinel")
	}

	switch cfg.Type {
	case Once, Recurring:
		return nil
	case 0:
		return newError(MissingValue, FieldType, "schedule type is required")
	default:
		return newError(InvalidEnum, FieldType, "unknown schedule type %d", int(cfg.Type))
	}
}

func validateDateLimits(limits mo.Option[DateLimits]) error {
	dl, ok := limits.Get()
	if !ok {
		return nil
	}
	end, ok := dl.End.Get()
	if !ok {
		return nil
	}
	start, ok := dl.Start.Get()
	if !ok {
		return newError(MissingValue, FieldDateLimitsStart, "an end date requires a start date")
	}
	if !start.Before(end) {
		return newError(LimitsInverted, FieldDateLimits, "end %s is not after start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return nil
}

// ValidateOnce checks a single-occurrence schedule.
func ValidateOnce(cfg RecurrenceConfig) error {
	if err := ValidateBasic(cfg); err != nil {
		return err
	}

	date, ok := cfg.ScheduleDate.Get()
	if !ok || date.IsZero() {
		return newError(MissingValue, FieldScheduleDate, "a one-time schedule needs a date")
	}
	if !withinLimits(date, cfg.DateLimits) {
		return newError(OutOfLimits, FieldScheduleDate, "%s is outside the date limits", date.Format(time.DateTime))
	}
	return nil
}

// ValidateRecurring checks a recurring schedule.
func ValidateRecurring(cfg RecurrenceConfig) error {
	if err := ValidateBasic(cfg); err != nil {
		return err
	}

	period, ok := cfg.Period.Get()
	if !ok {
		return newError(MissingValue, FieldPeriod, "a recurring schedule needs a period type")
	}
	if !period.valid() {
		return newError(InvalidEnum, FieldPeriod, "unknown period type %d", int(period))
	}

	n, ok := cfg.OccurrencyPeriod.Get()
	if !ok {
		return newError(MissingValue, FieldOccurrencyPeriod, "a recurring schedule needs an occurrence period")
	}
	if n < 0 {
		return newError(OutOfRange, FieldOccurrencyPeriod, "must not be negative, got %d", n)
	}

	for _, day := range cfg.WeeklyDays {
		if day < time.Sunday || day > time.Saturday {
			return newError(InvalidEnum, FieldWeeklyDays, "unknown weekday %d", int(day))
		}
	}

	return validateDaily(cfg)
}

// validateDaily requires either a fixed hour or a complete frequency pair.
// The fixed hour wins when both are set.
func validateDaily(cfg RecurrenceConfig) error {
	if hour, ok := cfg.DailyScheduleHour.Get(); ok {
		if !hour.Valid() {
			return newError(OutOfRange, FieldDailyScheduleHour, "invalid time of day %s", hour)
		}
		return nil
	}

	freq, hasFreq := cfg.DailyFrequency.Get()
	step, hasStep := cfg.DailyFrequencyPeriod.Get()
	switch {
	case !hasFreq && !hasStep:
		return newError(DailyConfigInvalid, FieldDailyScheduleHour, "either a fixed hour or a frequency with its period is required")
	case !hasFreq:
		return newError(DailyConfigInvalid, FieldDailyFrequency, "a frequency period was given without a frequency")
	case !hasStep:
		return newError(DailyConfigInvalid, FieldDailyFrequencyPeriod, "a frequency was given without a period")
	}

	if !freq.valid() {
		return newError(InvalidEnum, FieldDailyFrequency, "unknown frequency %d", int(freq))
	}
	if step < 0 {
		return newError(OutOfRange, FieldDailyFrequencyPeriod, "must not be negative, got %d", step)
	}

	return validateTimeLimits(cfg.DailyLimits)
}

func validateTimeLimits(limits mo.Option[TimeLimits]) error {
	if _, ok := limits.Get(); !ok {
		return nil
	}
	start, end := timeWindow(limits)
	if !start.Valid() {
		return newError(OutOfRange, FieldDailyLimits, "invalid start time %s", start)
	}
	if !end.Valid() {
		return newError(OutOfRange, FieldDailyLimits, "invalid end time %s", end)
	}
	if !start.Before(end) {
		return newError(LimitsInverted, FieldDailyLimits, "end %s is not after start %s", end, start)
	}
	return nil
}
