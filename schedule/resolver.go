package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/mo"

	"github.com/cyp0633/schedcfg/locale"
)

// Resolver computes the next execution of schedule configurations. It holds
// no per-call state and is safe for concurrent use.
type Resolver struct {
	catalog  *locale.Catalog
	calendar locale.Calendar
	cache    *ResultCache
	logger   *slog.Logger
}

// NewResolver creates a resolver with DefaultResolverConfig.
func NewResolver() *Resolver {
	return NewResolverWithConfig(DefaultResolverConfig)
}

// Close releases the result cache, if any.
func (r *Resolver) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// CacheStats reports on the result cache. It is zero when caching is off.
func (r *Resolver) CacheStats() CacheStats {
	if r.cache == nil {
		return CacheStats{}
	}
	return r.cache.Stats()
}

func (r *Resolver) calendarFor(cfg RecurrenceConfig) locale.Calendar {
	if r.calendar != nil {
		return r.calendar
	}
	return locale.ForLanguage(cfg.Language)
}

// ResolveNextExecution validates cfg and returns its next execution with a
// description, or the validation failure.
func (r *Resolver) ResolveNextExecution(cfg RecurrenceConfig) mo.Result[ScheduleEvent] {
	return mo.TupleToResult(r.Resolve(cfg))
}

// Resolve is ResolveNextExecution with a plain error return.
func (r *Resolver) Resolve(cfg RecurrenceConfig) (ScheduleEvent, error) {
	if r.cache != nil {
		if event, ok := r.cache.Get(cfg); ok {
			return event, nil
		}
	}

	event, err := r.resolve(cfg)
	if err != nil {
		var verr *Error
		if errors.As(err, &verr) {
			r.logger.Debug("schedule rejected",
				"kind", string(verr.Kind),
				"field", verr.Field,
				"error", verr.Message)
		}
		return ScheduleEvent{}, err
	}

	if r.cache != nil {
		r.cache.Set(cfg, event)
	}
	r.logger.Debug("schedule resolved",
		"type", cfg.Type.String(),
		"current_date", cfg.CurrentDate,
		"execution_date", event.ExecutionDate)

	return event, nil
}

func (r *Resolver) resolve(cfg RecurrenceConfig) (ScheduleEvent, error) {
	if err := ValidateBasic(cfg); err != nil {
		return ScheduleEvent{}, err
	}
	if cfg.Type == Once {
		return r.resolveOnce(cfg)
	}
	return r.resolveRecurring(cfg)
}

func (r *Resolver) resolveOnce(cfg RecurrenceConfig) (ScheduleEvent, error) {
	if err := ValidateOnce(cfg); err != nil {
		return ScheduleEvent{}, err
	}
	return r.event(cfg, cfg.ScheduleDate.MustGet())
}

func (r *Resolver) resolveRecurring(cfg RecurrenceConfig) (ScheduleEvent, error) {
	if err := ValidateRecurring(cfg); err != nil {
		return ScheduleEvent{}, err
	}

	cal := r.calendarFor(cfg)
	next, err := nextRecurring(cfg, cal)
	if err != nil {
		return ScheduleEvent{}, err
	}

	if cfg.Period.MustGet() == Weekly && len(cfg.WeeklyDays) > 0 {
		r.logger.Debug("weekly occurrence",
			"first_day", cal.FirstDayOfWeek().String(),
			"week", cal.WeekOfYear(next),
			"weekday", next.Weekday().String())
	}

	return r.event(cfg, next)
}

func (r *Resolver) event(cfg RecurrenceConfig, at time.Time) (ScheduleEvent, error) {
	desc, err := Describe(cfg, r.catalog, r.calendarFor(cfg))
	if err != nil {
		return ScheduleEvent{}, fmt.Errorf("describing schedule: %w", err)
	}
	return ScheduleEvent{ExecutionDate: at, ExecutionDescription: desc}, nil
}

// ResolveAll resolves each configuration independently.
func (r *Resolver) ResolveAll(cfgs []RecurrenceConfig) []mo.Result[ScheduleEvent] {
	results := make([]mo.Result[ScheduleEvent], len(cfgs))
	for i, cfg := range cfgs {
		results[i] = r.ResolveNextExecution(cfg)
	}
	return results
}

// Upcoming returns up to n successive executions, each resolved with the
// previous execution as the reference date. It stops early once the date
// limits are exhausted or an execution fails to advance; a one-time schedule
// yields a single event.
func (r *Resolver) Upcoming(cfg RecurrenceConfig, n int) ([]ScheduleEvent, error) {
	events := make([]ScheduleEvent, 0, max(n, 0))
	for len(events) < n {
		event, err := r.Resolve(cfg)
		if err != nil {
			if len(events) > 0 && IsKind(err, OutOfLimits) {
				break
			}
			return events, err
		}
		if len(events) > 0 && !event.ExecutionDate.After(events[len(events)-1].ExecutionDate) {
			break
		}
		events = append(events, event)
		if cfg.Type == Once {
			break
		}
		cfg.CurrentDate = event.ExecutionDate
	}
	return events, nil
}
