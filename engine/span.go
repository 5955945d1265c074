package engine

// SpanLength returns the number of chargeable days for an inclusive date
// range under a category's exclusion rules.
//
// Sick leave charges every calendar day in the range, weekends and holidays
// included. Every other category (annual) charges only days that are
// neither weekend days nor holidays.
//
// An inverted range (start after end) returns 0. Callers must treat that
// as an invalid request, not a valid zero-length leave.
func SpanLength(start, end Date, holidays HolidaySet, weekend WeekendSet, category Category) int {
	if start.After(end) {
		return 0
	}

	if category == CategorySick {
		days := 0
		for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
			days++
		}
		return days
	}

	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if weekend.Contains(d.Weekday()) {
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		count++
	}
	return count
}

// ClassifyWorkedDay decides whether a date qualifies for holiday-work
// compensation under the current calendar and weekend policy. Holidays win
// over weekend days when a date is both. The third return is false for
// ordinary workdays, which earn no compensation.
func ClassifyWorkedDay(d Date, holidays HolidaySet, weekend WeekendSet) (WorkedDayType, bool) {
	if holidays.Contains(d) {
		return WorkedHoliday, true
	}
	if weekend.Contains(d.Weekday()) {
		return WorkedWeekend, true
	}
	return "", false
}
