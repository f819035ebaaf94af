package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/cyp0633/schedcfg/locale"
)

// Describe renders cfg as a sentence in cfg.Language. Every word comes from
// the catalog; cal decides the order weekdays are listed in.
func Describe(cfg RecurrenceConfig, cat *locale.Catalog, cal locale.Calendar) (string, error) {
	d := newDescriber(cat, cfg.Language)

	switch cfg.Type {
	case Once:
		d.once(cfg)
	case Recurring:
		d.recurring(cfg, cal)
	}
	d.dateLimits(cfg)

	if d.err != nil {
		return "", d.err
	}
	return strings.Join(d.parts, " "), nil
}

// describer accumulates clauses; the first catalog error sticks.
type describer struct {
	cat        *locale.Catalog
	lang       locale.Language
	dateLayout string
	timeLayout string
	parts      []string
	err        error
}

func newDescriber(cat *locale.Catalog, lang locale.Language) *describer {
	d := &describer{cat: cat, lang: lang}
	layouts, err := cat.LookupList([]string{locale.KeyDateLayout, locale.KeyTimeLayout}, lang)
	if err != nil {
		d.err = err
		return d
	}
	d.dateLayout, d.timeLayout = layouts[0], layouts[1]
	return d
}

func (d *describer) lookup(key string) string {
	if d.err != nil {
		return ""
	}
	s, err := d.cat.Lookup(key, d.lang)
	if err != nil {
		d.err = err
	}
	return s
}

// unit returns the plural name of a period or frequency unit.
func (d *describer) unit(key string) string {
	if d.err != nil {
		return ""
	}
	s, err := d.cat.PeriodName(key, d.lang)
	if err != nil {
		d.err = err
	}
	return s
}

func (d *describer) add(key string, args ...string) {
	if d.err != nil {
		return
	}
	s, err := d.cat.Format(key, d.lang, args...)
	if err != nil {
		d.err = err
		return
	}
	d.parts = append(d.parts, s)
}

func (d *describer) date(t time.Time) string { return t.Format(d.dateLayout) }

func (d *describer) clock(t TimeOfDay) string { return t.Format(d.timeLayout) }

func (d *describer) once(cfg RecurrenceConfig) {
	at := cfg.ScheduleDate.OrEmpty()
	d.add(locale.KeyOnce)
	d.add(locale.KeyScheduledOn, d.date(at), at.Format(d.timeLayout))
}

func (d *describer) recurring(cfg RecurrenceConfig, cal locale.Calendar) {
	period := cfg.Period.OrEmpty()
	d.add(locale.KeyEveryPeriod, strconv.Itoa(cfg.OccurrencyPeriod.OrEmpty()), d.unit(period.nameKey()))

	if period == Weekly && len(cfg.WeeklyDays) > 0 {
		d.add(locale.KeyOnDays, d.weekdayList(cfg.WeeklyDays, cal.FirstDayOfWeek()))
	}

	if hour, ok := cfg.DailyScheduleHour.Get(); ok {
		d.add(locale.KeyAtTime, d.clock(hour))
		return
	}

	freq, ok := cfg.DailyFrequency.Get()
	if !ok {
		return
	}
	d.add(locale.KeyEveryFrequency, strconv.Itoa(cfg.DailyFrequencyPeriod.OrEmpty()), d.unit(freq.nameKey()))

	if tl, ok := cfg.DailyLimits.Get(); ok {
		d.add(locale.KeyBetween, d.clock(tl.Start.OrElse(Midnight)), d.clock(tl.End.OrElse(lastMinute)))
	}
}

func (d *describer) dateLimits(cfg RecurrenceConfig) {
	dl, ok := cfg.DateLimits.Get()
	if !ok {
		return
	}
	if start, ok := dl.Start.Get(); ok {
		d.add(locale.KeyStartingOn, d.date(start))
	}
	if end, ok := dl.End.Get(); ok {
		d.add(locale.KeyEndingOn, d.date(end))
	}
}

// weekdayList joins the selected weekday names in week order, e.g.
// "Monday, Wednesday and Friday".
func (d *describer) weekdayList(days []time.Weekday, first time.Weekday) string {
	set := newWeekdaySet(days)
	var names []string
	for _, day := range locale.WeekOrder(first) {
		if set[day] {
			names = append(names, d.cat.WeekdayName(day, d.lang))
		}
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	sep := d.lookup(locale.KeyListSeparator) + " "
	last := len(names) - 1
	return strings.Join(names[:last], sep) + " " + d.lookup(locale.KeyAnd) + " " + names[last]
}
