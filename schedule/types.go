package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/cyp0633/schedcfg/locale"
)

// MaxTime is the "unbounded" sentinel. It is never a valid reference date.
var MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// ScheduleType selects between a single occurrence and a recurrence.
type ScheduleType int

const (
	Once ScheduleType = iota + 1
	Recurring
)

func (t ScheduleType) String() string {
	switch t {
	case Once:
		return "once"
	case Recurring:
		return "recurring"
	default:
		return fmt.Sprintf("ScheduleType(%d)", int(t))
	}
}

// ParseScheduleType accepts "once" or "recurring", case-insensitively.
func ParseScheduleType(s string) (ScheduleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once":
		return Once, nil
	case "recurring":
		return Recurring, nil
	}
	return 0, newError(InvalidEnum, FieldType, "unknown schedule type %q", s)
}

// PeriodType is the recurrence granularity.
type PeriodType int

const (
	Daily PeriodType = iota + 1
	Weekly
	Monthly
	Yearly
)

func (p PeriodType) valid() bool { return p >= Daily && p <= Yearly }

func (p PeriodType) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("PeriodType(%d)", int(p))
	}
}

// nameKey is the catalog key of the plural unit name.
func (p PeriodType) nameKey() string {
	switch p {
	case Weekly:
		return locale.KeyWeeks
	case Monthly:
		return locale.KeyMonths
	case Yearly:
		return locale.KeyYears
	default:
		return locale.KeyDays
	}
}

// ParsePeriodType accepts "daily", "weekly", "monthly" or "yearly".
func ParsePeriodType(s string) (PeriodType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	case "yearly":
		return Yearly, nil
	}
	return 0, newError(InvalidEnum, FieldPeriod, "unknown period type %q", s)
}

// Frequency is the unit of sub-daily ticking.
type Frequency int

const (
	Hours Frequency = iota + 1
	Minutes
	Seconds
)

func (f Frequency) valid() bool { return f >= Hours && f <= Seconds }

func (f Frequency) String() string {
	switch f {
	case Hours:
		return "hours"
	case Minutes:
		return "minutes"
	case Seconds:
		return "seconds"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// Unit returns the duration of a single step.
func (f Frequency) Unit() time.Duration {
	switch f {
	case Hours:
		return time.Hour
	case Minutes:
		return time.Minute
	default:
		return time.Second
	}
}

func (f Frequency) nameKey() string {
	switch f {
	case Hours:
		return locale.KeyHours
	case Minutes:
		return locale.KeyMinutes
	default:
		return locale.KeySeconds
	}
}

// ParseFrequency accepts "hours", "minutes" or "seconds".
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hours", "hour":
		return Hours, nil
	case "minutes", "minute":
		return Minutes, nil
	case "seconds", "second":
		return Seconds, nil
	}
	return 0, newError(InvalidEnum, FieldDailyFrequency, "unknown frequency %q", s)
}

// DateLimits is an inclusive calendar-date window. Only the date part of
// Start and End is used; End covers its whole day.
type DateLimits struct {
	Start mo.Option[time.Time]
	End   mo.Option[time.Time]
}

// TimeLimits is the intra-day window sub-daily ticks fall in. Missing bounds
// default to 00:00 and the end of the day.
type TimeLimits struct {
	Start mo.Option[TimeOfDay]
	End   mo.Option[TimeOfDay]
}

// RecurrenceConfig is the full description of a schedule. It is treated as
// immutable by everything in this package.
type RecurrenceConfig struct {
	CurrentDate time.Time
	Type        ScheduleType
	DateLimits  mo.Option[DateLimits]

	// Once.
	ScheduleDate mo.Option[time.Time]

	// Recurring.
	Period           mo.Option[PeriodType]
	OccurrencyPeriod mo.Option[int]
	WeeklyDays       []time.Weekday

	DailyScheduleHour    mo.Option[TimeOfDay]
	DailyFrequency       mo.Option[Frequency]
	DailyFrequencyPeriod mo.Option[int]
	DailyLimits          mo.Option[TimeLimits]

	Language locale.Language
}

// ScheduleEvent is the result of a resolution.
type ScheduleEvent struct {
	ExecutionDate        time.Time
	ExecutionDescription string
}
