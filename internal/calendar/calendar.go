// Package calendar knows which days US equity markets (NYSE/Nasdaq) trade.
package calendar

import "time"

// LastNTradingDays returns the last n US trading days up to and including
// from's date (most recent first). It excludes weekends and full-day NYSE
// holidays.
func LastNTradingDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)
	for len(out) < n {
		if IsTradingDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// IsTradingDay reports whether US equity markets hold a regular session on d.
func IsTradingDay(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := holidays(d.Year())[dateKey(d)]
	return !holiday
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// holidays returns the full-day NYSE closures for a year, keyed by UTC date.
func holidays(year int) map[time.Time]struct{} {
	days := make([]time.Time, 0, 10)

	// New Year's Day moves to Monday when on Sunday; a Saturday New Year is not observed.
	newYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if newYear.Weekday() == time.Sunday {
		newYear = newYear.AddDate(0, 0, 1)
	}
	if newYear.Weekday() != time.Saturday {
		days = append(days, newYear)
	}

	days = append(days,
		// Martin Luther King Jr. Day, Washington's Birthday
		nthWeekday(year, time.January, time.Monday, 3),
		nthWeekday(year, time.February, time.Monday, 3),
		// Good Friday
		easterSunday(year).AddDate(0, 0, -2),
		// Memorial Day, Independence Day, Labor Day, Thanksgiving, Christmas
		lastWeekday(year, time.May, time.Monday),
		observed(time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.September, time.Monday, 1),
		nthWeekday(year, time.November, time.Thursday, 4),
		observed(time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)),
	)
	if year >= 2022 {
		days = append(days, observed(time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC))) // Juneteenth
	}

	out := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		out[d] = struct{}{}
	}
	return out
}

// observed shifts a Saturday holiday to Friday and a Sunday one to Monday.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(wd) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
