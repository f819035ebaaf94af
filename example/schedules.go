package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/mo"
	"gopkg.in/yaml.v3"

	"github.com/cyp0633/schedcfg/locale"
	"github.com/cyp0633/schedcfg/schedule"
)

// scheduleFile is the YAML document read by the example.
type scheduleFile struct {
	Language  string          `yaml:"language"`
	Schedules []scheduleEntry `yaml:"schedules"`
}

type scheduleEntry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Language string `yaml:"language"`

	// Once.
	Date string `yaml:"date"`

	// Date limits.
	Start string `yaml:"start"`
	End   string `yaml:"end"`

	// Recurring.
	Period    string          `yaml:"period"`
	Every     *int            `yaml:"every"`
	Days      []string        `yaml:"days"`
	At        string          `yaml:"at"`
	Frequency *frequencyEntry `yaml:"frequency"`
}

type frequencyEntry struct {
	Unit  string `yaml:"unit"`
	Every *int   `yaml:"every"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
}

var dateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", time.DateOnly, time.RFC3339}

func loadSchedules(r io.Reader) (*scheduleFile, error) {
	var file scheduleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding schedule file: %w", err)
	}
	if len(file.Schedules) == 0 {
		return nil, fmt.Errorf("schedule file lists no schedules")
	}
	return &file, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD[ HH:MM[:SS]])", s)
}

func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func optionalDate(s string, loc *time.Location) (mo.Option[time.Time], error) {
	if s == "" {
		return mo.None[time.Time](), nil
	}
	t, err := parseDate(s, loc)
	if err != nil {
		return mo.None[time.Time](), err
	}
	return mo.Some(t), nil
}

func optionalTime(s string) (mo.Option[schedule.TimeOfDay], error) {
	if s == "" {
		return mo.None[schedule.TimeOfDay](), nil
	}
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return mo.None[schedule.TimeOfDay](), err
	}
	return mo.Some(tod), nil
}

// config converts the entry into a RecurrenceConfig resolved against now.
// Fields the entry leaves out stay absent, so the resolver reports them.
func (e scheduleEntry) config(now time.Time, lang locale.Language) (schedule.RecurrenceConfig, error) {
	cfg := schedule.RecurrenceConfig{CurrentDate: now, Language: lang}
	loc := now.Location()

	if e.Language != "" {
		l, err := locale.Parse(e.Language)
		if err != nil {
			return cfg, err
		}
		cfg.Language = l
	}

	if e.Type != "" {
		st, err := schedule.ParseScheduleType(e.Type)
		if err != nil {
			return cfg, err
		}
		cfg.Type = st
	}

	date, err := optionalDate(e.Date, loc)
	if err != nil {
		return cfg, err
	}
	cfg.ScheduleDate = date

	if e.Start != "" || e.End != "" {
		start, err := optionalDate(e.Start, loc)
		if err != nil {
			return cfg, err
		}
		end, err := optionalDate(e.End, loc)
		if err != nil {
			return cfg, err
		}
		cfg.DateLimits = mo.Some(schedule.DateLimits{Start: start, End: end})
	}

	if e.Period != "" {
		p, err := schedule.ParsePeriodType(e.Period)
		if err != nil {
			return cfg, err
		}
		cfg.Period = mo.Some(p)
	}
	cfg.OccurrencyPeriod = mo.PointerToOption(e.Every)

	for _, name := range e.Days {
		d, err := parseWeekday(name)
		if err != nil {
			return cfg, err
		}
		cfg.WeeklyDays = append(cfg.WeeklyDays, d)
	}

	if cfg.DailyScheduleHour, err = optionalTime(e.At); err != nil {
		return cfg, err
	}

	if f := e.Frequency; f != nil {
		if f.Unit != "" {
			unit, err := schedule.ParseFrequency(f.Unit)
			if err != nil {
				return cfg, err
			}
			cfg.DailyFrequency = mo.Some(unit)
		}
		cfg.DailyFrequencyPeriod = mo.PointerToOption(f.Every)

		if f.From != "" || f.To != "" {
			from, err := optionalTime(f.From)
			if err != nil {
				return cfg, err
			}
			to, err := optionalTime(f.To)
			if err != nil {
				return cfg, err
			}
			cfg.DailyLimits = mo.Some(schedule.TimeLimits{Start: from, End: to})
		}
	}

	return cfg, nil
}
