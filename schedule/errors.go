package schedule

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a configuration was rejected.
type ErrorKind string

const (
	MissingValue       ErrorKind = "missing_value"
	OutOfRange         ErrorKind = "out_of_range"
	InvalidEnum        ErrorKind = "invalid_enum"
	DailyConfigInvalid ErrorKind = "daily_config_invalid"
	LimitsInverted     ErrorKind = "limits_inverted"
	OutOfLimits        ErrorKind = "out_of_limits"
)

// Field names reported in errors.
const (
	FieldCurrentDate          = "CurrentDate"
	FieldType                 = "Type"
	FieldDateLimits           = "DateLimits"
	FieldDateLimitsStart      = "DateLimits.Start"
	FieldScheduleDate         = "ScheduleDate"
	FieldPeriod               = "Period"
	FieldOccurrencyPeriod     = "OccurrencyPeriod"
	FieldWeeklyDays           = "WeeklyDays"
	FieldDailyScheduleHour    = "DailyScheduleHour"
	FieldDailyFrequency       = "DailyFrequency"
	FieldDailyFrequencyPeriod = "DailyFrequencyPeriod"
	FieldDailyLimits          = "DailyLimits"
	FieldExecutionDate        = "ExecutionDate"
)

// Error is returned for every rejected configuration.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func newError(kind ErrorKind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
