/*
balance.go - Balance aggregation

PURPOSE:
  The composition root of the engine. Combines accrued annual days,
  holiday/weekend compensation credits, consumed annual/sick days,
  departure-hour deductions, and signed manual adjustments into the final
  reported balance.

TWO QUERY MODES, ONE CODE PATH:
  Balances      - live query: approved records, no upper date filter
  BalancesAsOf  - historical report: approved records dated <= asOf

  Both take the reference date explicitly. "Current balance" is just
  Balances with today's date supplied by the caller; the engine never
  consults the system clock.

ROUNDING:
  Two-decimal rounding is applied once, on the reported figures. The
  accrual integral is accumulated unrounded so report splits cannot
  compound rounding error.

AN EMPLOYEE WITH NO RECORDS:
  Yields a report of all zeros except entitlement-derived accrual.

SEE ALSO:
  - accrual.go: AccruedAnnual
  - types.go: BalanceReport, DepartureQuota
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// BALANCE INPUT - A consistent snapshot supplied by the caller
// =============================================================================

// BalanceInput is the record snapshot one balance query reads. The caller
// is responsible for supplying a consistent snapshot already scoped to the
// tenant; the engine additionally scopes every collection to the employee.
type BalanceInput struct {
	Employee    Employee
	Leaves      []LeaveRecord
	Departures  []DepartureRecord
	HolidayWork []HolidayWorkCompensation
	Adjustments []BalanceAdjustment
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Balances computes the live balance report at asOf. Only approved leave
// and departure records participate; no upper date filter is applied.
func Balances(in BalanceInput, asOf Date) BalanceReport {
	return aggregate(in, asOf, false)
}

// BalancesAsOf computes a historical (or future) report: the same math as
// Balances, with every collection additionally filtered to dates <= asOf.
// Given the same snapshot it is deterministic, so historical reports are
// reproducible.
func BalancesAsOf(in BalanceInput, asOf Date) BalanceReport {
	return aggregate(in, asOf, true)
}

func aggregate(in BalanceInput, asOf Date, cutoff bool) BalanceReport {
	e := in.Employee

	usedAnnual := 0
	usedSick := 0
	for _, l := range in.Leaves {
		if l.EmployeeID != e.ID || l.Status != StatusApproved {
			continue
		}
		if cutoff && l.StartDate.After(asOf) {
			continue
		}
		switch l.Category {
		case CategoryAnnual:
			usedAnnual += l.DaysTaken
		case CategorySick:
			// Sick usage resets each calendar year; annual does not.
			if l.StartDate.Year() == asOf.Year() {
				usedSick += l.DaysTaken
			}
		}
	}

	departureHours := 0
	for _, d := range in.Departures {
		if d.EmployeeID != e.ID || d.Status != StatusApproved {
			continue
		}
		if cutoff && d.Date.After(asOf) {
			continue
		}
		departureHours += d.Hours
	}
	// Hours accumulate indefinitely; a day is deducted only once a full
	// multiple of DeductionHours is crossed.
	deductionDays := departureHours / DeductionHours

	compensation := 0
	for _, hw := range in.HolidayWork {
		if hw.EmployeeID != e.ID {
			continue
		}
		if cutoff && hw.Date.After(asOf) {
			continue
		}
		compensation++
	}

	annualAdj := decimal.Zero
	sickAdj := decimal.Zero
	for _, adj := range in.Adjustments {
		if adj.EmployeeID != e.ID {
			continue
		}
		if cutoff && adj.Date.After(asOf) {
			continue
		}
		switch adj.Category {
		case CategoryAnnual:
			annualAdj = annualAdj.Add(adj.AdjustmentDays)
		case CategorySick:
			sickAdj = sickAdj.Add(adj.AdjustmentDays)
		}
	}

	accrued := AccruedAnnual(e, asOf)

	annualBalance := accrued.
		Add(decimal.NewFromInt(int64(compensation))).
		Sub(decimal.NewFromInt(int64(usedAnnual))).
		Sub(decimal.NewFromInt(int64(deductionDays))).
		Add(annualAdj)

	sickBalance := decimal.NewFromInt(SickAnnualDays).
		Add(sickAdj).
		Sub(decimal.NewFromInt(int64(usedSick)))

	return BalanceReport{
		EmployeeID:             e.ID,
		AsOf:                   asOf,
		AccruedAnnual:          accrued.Round(2),
		HolidayCompensation:    compensation,
		UsedAnnual:             usedAnnual,
		UsedSick:               usedSick,
		DepartureHours:         departureHours,
		DepartureDeductionDays: deductionDays,
		AnnualAdjustment:       annualAdj.Round(2),
		SickAdjustment:         sickAdj.Round(2),
		AnnualBalance:          annualBalance.Round(2),
		SickBalance:            sickBalance.Round(2),
	}
}

// =============================================================================
// MONTHLY DEPARTURE QUOTA - Informational view
// =============================================================================

// MonthlyDepartureQuota reports how many departure hours remain in asOf's
// calendar month before the next deduction, plus the lifetime hours carried
// toward it. UI guidance only: deduction days are always computed from the
// full lifetime total, never from this view.
func MonthlyDepartureQuota(employeeID string, departures []DepartureRecord, asOf Date) DepartureQuota {
	monthHours := 0
	totalHours := 0
	for _, d := range departures {
		if d.EmployeeID != employeeID || d.Status != StatusApproved {
			continue
		}
		totalHours += d.Hours
		if d.Date.Year() == asOf.Year() && d.Date.Month() == asOf.Month() {
			monthHours += d.Hours
		}
	}
	return DepartureQuota{
		EmployeeID:         employeeID,
		AsOf:               asOf,
		RemainingThisMonth: DeductionHours - monthHours,
		CarriedHours:       totalHours % DeductionHours,
	}
}
