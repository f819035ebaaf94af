package locale

import "time"

// Calendar answers the week-layout questions the weekly recurrence needs.
type Calendar interface {
	FirstDayOfWeek() time.Weekday
	WeekOfYear(t time.Time) int
}

// WeekCalendar is a Calendar whose weeks start on FirstDay. Week 1 is the
// week containing January 1st.
type WeekCalendar struct {
	FirstDay time.Weekday
}

// ForLanguage returns the calendar conventionally used with lang.
func ForLanguage(lang Language) WeekCalendar {
	switch lang {
	case EnglishGB, Spanish:
		return WeekCalendar{FirstDay: time.Monday}
	default:
		return WeekCalendar{FirstDay: time.Sunday}
	}
}

func (c WeekCalendar) FirstDayOfWeek() time.Weekday { return c.FirstDay }

func (c WeekCalendar) WeekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	offset := (int(jan1.Weekday()) - int(c.FirstDay) + 7) % 7
	return (t.YearDay()-1+offset)/7 + 1
}

// Position returns how many days day comes after the first day of the week.
func Position(day, first time.Weekday) int {
	return (int(day) - int(first) + 7) % 7
}

// WeekdayAt is the inverse of Position.
func WeekdayAt(pos int, first time.Weekday) time.Weekday {
	return time.Weekday((int(first) + pos) % 7)
}

// WeekOrder returns the seven weekdays starting at first.
func WeekOrder(first time.Weekday) []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = WeekdayAt(i, first)
	}
	return days
}
