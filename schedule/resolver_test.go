package schedule

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/schedcfg/locale"
)

func TestResolver_Recurring(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		cfg  func() RecurrenceConfig
		want time.Time
	}{
		{
			name: "daily fixed hour later today",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 1, 0, 0), Daily, 2, hhmm(5, 0))
			},
			want: at(2021, 1, 1, 5, 0),
		},
		{
			name: "daily fixed hour already passed",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 1, 10, 0), Daily, 2, hhmm(5, 0))
			},
			want: at(2021, 1, 3, 5, 0),
		},
		{
			name: "daily fixed hour equal to reference",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 1, 5, 0), Daily, 1, hhmm(5, 0))
			},
			want: at(2021, 1, 2, 5, 0),
		},
		{
			name: "daily frequency past the window moves to the next period",
			cfg: func() RecurrenceConfig {
				cfg := recurringEvery(at(2021, 1, 1, 10, 30), Daily, 5, Hours, 1)
				cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))
				cfg.DateLimits = limits(day(2021, 1, 1), day(2021, 1, 31))
				return cfg
			},
			want: at(2021, 1, 6, 4, 0),
		},
		{
			name: "daily frequency inside the window",
			cfg: func() RecurrenceConfig {
				cfg := recurringEvery(at(2021, 1, 1, 5, 30), Daily, 1, Hours, 1)
				cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))
				return cfg
			},
			want: at(2021, 1, 1, 6, 0),
		},
		{
			name: "daily frequency tick overrun saturates at window end",
			cfg: func() RecurrenceConfig {
				cfg := recurringEvery(at(2021, 1, 1, 7, 0), Daily, 1, Hours, 3)
				cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))
				return cfg
			},
			want: at(2021, 1, 1, 8, 0),
		},
		{
			name: "daily frequency on an exact tick moves to the next tick",
			cfg: func() RecurrenceConfig {
				cfg := recurringEvery(at(2021, 1, 6, 4, 0), Daily, 5, Hours, 1)
				cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))
				return cfg
			},
			want: at(2021, 1, 6, 5, 0),
		},
		{
			name: "minutes without a window",
			cfg: func() RecurrenceConfig {
				return recurringEvery(at(2021, 1, 1, 10, 7), Daily, 1, Minutes, 15)
			},
			want: at(2021, 1, 1, 10, 15),
		},
		{
			name: "seconds without a window",
			cfg: func() RecurrenceConfig {
				return recurringEvery(time.Date(2021, 1, 1, 10, 0, 10, 0, time.UTC), Daily, 1, Seconds, 30)
			},
			want: time.Date(2021, 1, 1, 10, 0, 30, 0, time.UTC),
		},
		{
			name: "monthly same day",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 15, 8, 0), Monthly, 1, hhmm(9, 0))
			},
			want: at(2021, 1, 15, 9, 0),
		},
		{
			name: "monthly clamps to the end of a shorter month",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 31, 10, 0), Monthly, 1, hhmm(9, 0))
			},
			want: at(2021, 2, 28, 9, 0),
		},
		{
			name: "monthly every three months",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 11, 20, 10, 0), Monthly, 3, hhmm(9, 0))
			},
			want: at(2022, 2, 20, 9, 0),
		},
		{
			name: "yearly from a leap day",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2020, 2, 29, 12, 0), Yearly, 1, hhmm(10, 0))
			},
			want: at(2021, 2, 28, 10, 0),
		},
		{
			name: "weekly without days keeps the weekday",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 1, 12, 0), Weekly, 2, hhmm(10, 0))
			},
			want: at(2021, 1, 15, 10, 0),
		},
		{
			name: "weekly with days after the start limit",
			cfg: func() RecurrenceConfig {
				cfg := recurringAt(day(2021, 1, 1), Weekly, 1, hhmm(5, 0))
				cfg.WeeklyDays = []time.Weekday{time.Wednesday}
				cfg.DateLimits = startingOn(day(2021, 1, 7))
				return cfg
			},
			want: at(2021, 1, 13, 5, 0),
		},
		{
			name: "weekly today is selected and still ahead",
			cfg: func() RecurrenceConfig {
				cfg := recurringAt(at(2021, 1, 1, 4, 0), Weekly, 1, hhmm(5, 0))
				cfg.WeeklyDays = []time.Weekday{time.Friday}
				return cfg
			},
			want: at(2021, 1, 1, 5, 0),
		},
		{
			name: "weekly today is selected but passed",
			cfg: func() RecurrenceConfig {
				cfg := recurringAt(at(2021, 1, 1, 10, 0), Weekly, 1, hhmm(5, 0))
				cfg.WeeklyDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
				return cfg
			},
			want: at(2021, 1, 4, 5, 0),
		},
		{
			name: "weekly later day in the same week",
			cfg: func() RecurrenceConfig {
				cfg := recurringAt(at(2021, 1, 4, 10, 0), Weekly, 3, hhmm(5, 0))
				cfg.WeeklyDays = []time.Weekday{time.Monday, time.Thursday}
				return cfg
			},
			want: at(2021, 1, 7, 5, 0),
		},
		{
			name: "weekly with frequency inside today's window",
			cfg: func() RecurrenceConfig {
				cfg := recurringEvery(at(2021, 1, 6, 7, 30), Weekly, 1, Hours, 1)
				cfg.WeeklyDays = []time.Weekday{time.Wednesday}
				cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))
				return cfg
			},
			want: at(2021, 1, 6, 8, 0),
		},
		{
			name: "start limit accepts its first instant",
			cfg: func() RecurrenceConfig {
				cfg := recurringAt(day(2021, 1, 1), Daily, 1, hhmm(0, 0))
				cfg.DateLimits = startingOn(day(2021, 1, 7))
				return cfg
			},
			want: day(2021, 1, 7),
		},
		{
			name: "zero period steps one unit",
			cfg: func() RecurrenceConfig {
				return recurringAt(at(2021, 1, 1, 10, 0), Daily, 0, hhmm(5, 0))
			},
			want: at(2021, 1, 2, 5, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := r.Resolve(tt.cfg())
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.ExecutionDate)
			assert.NotEmpty(t, event.ExecutionDescription)
		})
	}
}

func TestResolver_WeeklyWrapDependsOnFirstDayOfWeek(t *testing.T) {
	// Saturday 2021-01-02, only Sundays, every two weeks.
	cfg := recurringAt(at(2021, 1, 2, 10, 0), Weekly, 2, hhmm(5, 0))
	cfg.WeeklyDays = []time.Weekday{time.Sunday}

	us := cfg
	us.Language = locale.English
	event, err := NewResolver().Resolve(us)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 10, 5, 0), event.ExecutionDate)

	gb := cfg
	gb.Language = locale.EnglishGB
	event, err = NewResolver().Resolve(gb)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 3, 5, 0), event.ExecutionDate)

	// An injected calendar overrides the language default.
	r := NewResolverWithConfig(ResolverConfig{Calendar: locale.WeekCalendar{FirstDay: time.Monday}})
	event, err = r.Resolve(us)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 3, 5, 0), event.ExecutionDate)
}

func TestResolver_WeeklyPassedOnLastDayOfWeek(t *testing.T) {
	// Saturday 2021-01-09 is selected but its hour has passed. The next day
	// opens a new week, whose Monday comes next; no period is skipped.
	cfg := recurringAt(at(2021, 1, 9, 10, 0), Weekly, 2, hhmm(5, 0))
	cfg.WeeklyDays = []time.Weekday{time.Monday, time.Saturday}

	event, err := NewResolver().Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 11, 5, 0), event.ExecutionDate)

	// Monday-first: Sunday 2021-01-10 closes the week.
	gb := recurringAt(at(2021, 1, 10, 10, 0), Weekly, 3, hhmm(5, 0))
	gb.WeeklyDays = []time.Weekday{time.Tuesday, time.Sunday}
	gb.Language = locale.EnglishGB

	event, err = NewResolver().Resolve(gb)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 12, 5, 0), event.ExecutionDate)

	// Still ahead on the last day: no re-snap at all.
	early := cfg
	early.CurrentDate = at(2021, 1, 9, 4, 0)
	event, err = NewResolver().Resolve(early)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 9, 5, 0), event.ExecutionDate)
}

func TestResolver_OutOfLimits(t *testing.T) {
	r := NewResolver()

	last := recurringAt(at(2021, 1, 30, 10, 0), Daily, 1, hhmm(5, 0))
	last.DateLimits = limits(day(2021, 1, 1), day(2021, 1, 31))
	event, err := r.Resolve(last)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 31, 5, 0), event.ExecutionDate)

	past := last
	past.CurrentDate = at(2021, 1, 31, 10, 0)
	_, err = r.Resolve(past)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, OutOfLimits, verr.Kind)
	assert.Equal(t, FieldExecutionDate, verr.Field)
}

func TestResolver_Once(t *testing.T) {
	r := NewResolver()

	cfg := RecurrenceConfig{
		CurrentDate:  day(2020, 1, 4),
		Type:         Once,
		ScheduleDate: mo.Some(at(2020, 1, 8, 14, 0)),
		DateLimits:   startingOn(day(2020, 1, 1)),
	}

	event, err := r.Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2020, 1, 8, 14, 0), event.ExecutionDate)
	assert.Equal(t, "Occurs once. Schedule will be used on 01/08/2020 at 14:00 starting on 01/01/2020", event.ExecutionDescription)

	cfg.ScheduleDate = mo.Some(day(2019, 6, 1))
	_, err = r.Resolve(cfg)
	assert.True(t, IsKind(err, OutOfLimits))
}

func TestResolver_OnceIdentity(t *testing.T) {
	r := NewResolver()
	loc := time.FixedZone("UTC+5", 5*3600)

	for i := 0; i < 50; i++ {
		scheduled := time.Date(2020, 1, 1, 0, 0, 0, 0, loc).Add(time.Duration(i) * 37 * time.Hour).Add(time.Duration(i) * time.Second)
		cfg := RecurrenceConfig{
			CurrentDate:  day(2030, 1, 1),
			Type:         Once,
			ScheduleDate: mo.Some(scheduled),
		}
		event, err := r.Resolve(cfg)
		require.NoError(t, err)
		assert.True(t, event.ExecutionDate.Equal(scheduled))
		assert.Equal(t, loc, event.ExecutionDate.Location())
	}
}

func TestResolver_NeverReturnsThePast(t *testing.T) {
	r := NewResolver()

	weekdays := [][]time.Weekday{
		nil,
		{time.Monday},
		{time.Tuesday, time.Saturday},
		{time.Sunday, time.Wednesday, time.Friday},
	}

	for _, period := range []PeriodType{Daily, Weekly, Monthly, Yearly} {
		for every := 1; every <= 3; every++ {
			for h := 0; h < 24*9; h += 7 {
				current := at(2021, 3, 1, 0, 0).Add(time.Duration(h) * time.Hour)

				fixed := recurringAt(current, period, every, hhmm(13, 45))
				ticks := recurringEvery(current, period, every, Minutes, 45)
				ticks.DailyLimits = window(hhmm(6, 0), hhmm(18, 0))

				for _, cfg := range []RecurrenceConfig{fixed, ticks} {
					for _, days := range weekdays {
						if period != Weekly && days != nil {
							continue
						}
						cfg.WeeklyDays = days
						event, err := r.Resolve(cfg)
						require.NoError(t, err)
						assert.True(t, event.ExecutionDate.After(current),
							"%s every %d from %s returned %s", period, every, current, event.ExecutionDate)
					}
				}
			}
		}
	}
}

func TestResolver_ResolveNextExecution(t *testing.T) {
	r := NewResolver()

	ok := r.ResolveNextExecution(recurringAt(at(2021, 1, 1, 0, 0), Daily, 1, hhmm(5, 0)))
	require.True(t, ok.IsOk())
	assert.Equal(t, at(2021, 1, 1, 5, 0), ok.MustGet().ExecutionDate)

	bad := r.ResolveNextExecution(RecurrenceConfig{Type: Recurring})
	require.True(t, bad.IsError())
	assert.True(t, IsKind(bad.Error(), MissingValue))
}

func TestResolver_ResolveAll(t *testing.T) {
	r := NewResolver()

	results := r.ResolveAll([]RecurrenceConfig{
		recurringAt(at(2021, 1, 1, 0, 0), Daily, 1, hhmm(5, 0)),
		{CurrentDate: day(2021, 1, 1), Type: Recurring},
		{CurrentDate: day(2021, 1, 1), Type: Once, ScheduleDate: mo.Some(at(2021, 2, 1, 9, 0))},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].IsOk())
	assert.True(t, results[1].IsError())
	assert.True(t, IsKind(results[1].Error(), MissingValue))
	assert.Equal(t, at(2021, 2, 1, 9, 0), results[2].MustGet().ExecutionDate)
}

func TestResolver_Upcoming(t *testing.T) {
	r := NewResolver()

	t.Run("ticks roll over to the next day", func(t *testing.T) {
		cfg := recurringEvery(at(2021, 1, 1, 0, 0), Daily, 1, Hours, 2)
		cfg.DailyLimits = window(hhmm(4, 0), hhmm(8, 0))

		events, err := r.Upcoming(cfg, 5)
		require.NoError(t, err)
		require.Len(t, events, 5)

		want := []time.Time{
			at(2021, 1, 1, 4, 0),
			at(2021, 1, 1, 6, 0),
			at(2021, 1, 1, 8, 0),
			at(2021, 1, 2, 4, 0),
			at(2021, 1, 2, 6, 0),
		}
		for i, ev := range events {
			assert.Equal(t, want[i], ev.ExecutionDate)
		}
	})

	t.Run("weekly days are visited in order", func(t *testing.T) {
		cfg := recurringAt(at(2021, 1, 1, 10, 0), Weekly, 2, hhmm(5, 0))
		cfg.WeeklyDays = []time.Weekday{time.Monday, time.Wednesday}
		cfg.Language = locale.EnglishGB

		events, err := r.Upcoming(cfg, 4)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, at(2021, 1, 11, 5, 0), events[0].ExecutionDate)
		assert.Equal(t, at(2021, 1, 13, 5, 0), events[1].ExecutionDate)
		assert.Equal(t, at(2021, 1, 25, 5, 0), events[2].ExecutionDate)
		assert.Equal(t, at(2021, 1, 27, 5, 0), events[3].ExecutionDate)
	})

	t.Run("stops at the end limit", func(t *testing.T) {
		cfg := recurringAt(day(2021, 1, 29), Daily, 1, hhmm(5, 0))
		cfg.DateLimits = limits(day(2021, 1, 1), day(2021, 1, 31))

		events, err := r.Upcoming(cfg, 5)
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})

	t.Run("one-time schedule", func(t *testing.T) {
		cfg := RecurrenceConfig{CurrentDate: day(2021, 1, 1), Type: Once, ScheduleDate: mo.Some(day(2021, 3, 1))}
		events, err := r.Upcoming(cfg, 3)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		events, err := r.Upcoming(RecurrenceConfig{}, 3)
		assert.Error(t, err)
		assert.Empty(t, events)
	})
}

func TestResolver_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewResolverWithConfig(ResolverConfig{Logger: logger})

	_, err := r.Resolve(recurringAt(at(2021, 1, 1, 0, 0), Daily, 1, hhmm(5, 0)))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "schedule resolved")

	buf.Reset()
	_, err = r.Resolve(RecurrenceConfig{CurrentDate: MaxTime, Type: Once})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "schedule rejected")
	assert.Contains(t, buf.String(), "kind=out_of_range")
}

func TestResolver_Cache(t *testing.T) {
	r := NewResolverWithConfig(CachedResolverConfig)
	defer r.Close()

	cfg := recurringAt(at(2021, 1, 1, 0, 0), Daily, 1, hhmm(5, 0))

	first, err := r.Resolve(cfg)
	require.NoError(t, err)
	second, err := r.Resolve(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.CacheStats().TotalEntries)

	_, err = r.Resolve(RecurrenceConfig{})
	require.Error(t, err)
	assert.Equal(t, 1, r.CacheStats().TotalEntries)

	assert.Equal(t, CacheStats{}, NewResolver().CacheStats())
}

func TestResolver_ReResolvingAdvances(t *testing.T) {
	r := NewResolver()

	configs := map[string]RecurrenceConfig{
		"daily":   recurringAt(at(2021, 1, 1, 0, 0), Daily, 2, hhmm(5, 0)),
		"monthly": recurringAt(at(2021, 1, 31, 0, 0), Monthly, 1, hhmm(5, 0)),
		"minutes": recurringEvery(at(2021, 1, 1, 0, 0), Daily, 1, Minutes, 20),
	}
	weekly := recurringEvery(at(2021, 1, 1, 0, 0), Weekly, 2, Hours, 4)
	weekly.WeeklyDays = []time.Weekday{time.Tuesday, time.Saturday}
	weekly.DailyLimits = window(hhmm(9, 0), hhmm(17, 0))
	configs["weekly"] = weekly

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			prev := cfg.CurrentDate
			for i := 0; i < 40; i++ {
				event, err := r.Resolve(cfg)
				require.NoError(t, err)
				require.True(t, event.ExecutionDate.After(prev), "step %d: %s not after %s", i, event.ExecutionDate, prev)
				prev = event.ExecutionDate
				cfg.CurrentDate = prev
			}
		})
	}
}

func TestResolver_LogsWeekOfYear(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewResolverWithConfig(ResolverConfig{Logger: logger})

	cfg := recurringAt(at(2021, 1, 9, 10, 0), Weekly, 2, hhmm(5, 0))
	cfg.WeeklyDays = []time.Weekday{time.Monday, time.Saturday}

	event, err := r.Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 1, 11, 5, 0), event.ExecutionDate)
	assert.Contains(t, buf.String(), "first_day=Sunday week=3 weekday=Monday")
}
