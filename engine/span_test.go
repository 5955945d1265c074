package engine_test

import (
	"testing"
	"time"

	"github.com/sanad/leave-engine/engine"
)

func fridaySaturday() engine.WeekendSet {
	return engine.DefaultWeekend()
}

// =============================================================================
// LEAVE-SPAN CALCULATOR
// =============================================================================

func TestSpanLength_AnnualExcludesWeekendAndHoliday(t *testing.T) {
	// GIVEN: Annual leave Thursday 2024-03-07 through Tuesday 2024-03-12,
	//        Friday/Saturday weekend, Sunday 2024-03-10 an official holiday
	// WHEN: Computing the chargeable span
	// THEN: Only Thursday, Monday and Tuesday are charged (3 days).

	holidays := engine.NewHolidaySet([]engine.Holiday{
		{ID: "h1", Date: date(2024, time.March, 10), Name: "National Day"},
	})

	got := engine.SpanLength(
		date(2024, time.March, 7), date(2024, time.March, 12),
		holidays, fridaySaturday(), engine.CategoryAnnual,
	)
	if got != 3 {
		t.Errorf("expected 3 chargeable days, got %d", got)
	}
}

func TestSpanLength_SickChargesEveryCalendarDay(t *testing.T) {
	// Same range as above under the sick category: weekends and the
	// holiday still count, so all 6 days are charged.
	holidays := engine.NewHolidaySet([]engine.Holiday{
		{ID: "h1", Date: date(2024, time.March, 10), Name: "National Day"},
	})

	sick := engine.SpanLength(
		date(2024, time.March, 7), date(2024, time.March, 12),
		holidays, fridaySaturday(), engine.CategorySick,
	)
	annual := engine.SpanLength(
		date(2024, time.March, 7), date(2024, time.March, 12),
		holidays, fridaySaturday(), engine.CategoryAnnual,
	)

	if sick != 6 {
		t.Errorf("expected 6 sick days, got %d", sick)
	}
	if sick <= annual {
		t.Errorf("sick span (%d) must exceed annual span (%d) when excluded days exist", sick, annual)
	}
}

func TestSpanLength_SingleDay(t *testing.T) {
	got := engine.SpanLength(
		date(2024, time.March, 11), date(2024, time.March, 11),
		engine.HolidaySet{}, fridaySaturday(), engine.CategoryAnnual,
	)
	if got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
}

func TestSpanLength_InvertedRangeIsZero(t *testing.T) {
	// start > end signals an invalid request: 0, never negative.
	for _, cat := range []engine.Category{engine.CategoryAnnual, engine.CategorySick} {
		got := engine.SpanLength(
			date(2024, time.March, 12), date(2024, time.March, 7),
			engine.HolidaySet{}, fridaySaturday(), cat,
		)
		if got != 0 {
			t.Errorf("%s: expected 0 for inverted range, got %d", cat, got)
		}
	}
}

// =============================================================================
// WORKED-DAY CLASSIFIER
// =============================================================================

func TestClassifyWorkedDay(t *testing.T) {
	holidays := engine.NewHolidaySet([]engine.Holiday{
		// A Friday that is also an official holiday: the holiday rule wins.
		{ID: "h1", Date: date(2024, time.March, 8), Name: "Founding Day"},
	})
	weekend := fridaySaturday()

	cases := []struct {
		name     string
		day      engine.Date
		wantType engine.WorkedDayType
		wantOK   bool
	}{
		{"holiday on a weekend day", date(2024, time.March, 8), engine.WorkedHoliday, true},
		{"plain weekend day", date(2024, time.March, 9), engine.WorkedWeekend, true},
		{"ordinary workday", date(2024, time.March, 11), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, ok := engine.ClassifyWorkedDay(tc.day, holidays, weekend)
			if ok != tc.wantOK || gotType != tc.wantType {
				t.Errorf("got (%q, %v), want (%q, %v)", gotType, ok, tc.wantType, tc.wantOK)
			}
		})
	}
}
