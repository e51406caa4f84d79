package entities

import "time"

// NextDue computes the next due date for a recurrence rule from a base date.
// It is pure and total: any unrecognized mode falls back to one day ahead.
//
// Monthly modes keep the base day-of-month and clamp to the last valid day of
// the target month (Jan 31 -> Feb 29 in a leap year). Yearly keeps month/day
// and clamps Feb 29 to Feb 28 in non-leap years.
func NextDue(mode CycleMode, cycleDays int, base time.Time) time.Time {
	switch mode {
	case CycleDaily:
		return base.AddDate(0, 0, 1)
	case CycleWeekly:
		return base.AddDate(0, 0, 7)
	case CycleMonthly, CycleMonthStart:
		return addMonthClamped(base)
	case CycleYearly:
		return addYearClamped(base)
	case CycleDays:
		if cycleDays <= 0 {
			cycleDays = 1
		}
		return base.AddDate(0, 0, cycleDays)
	default:
		return base.AddDate(0, 0, 1)
	}
}

func addMonthClamped(base time.Time) time.Time {
	year, month, day := base.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

func addYearClamped(base time.Time) time.Time {
	year, month, day := base.Date()
	year++
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
