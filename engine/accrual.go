/*
accrual.go - Fractional monthly accrual integration

PURPOSE:
  Sums annual-leave accrual across a date span, month by month. Each month
  contributes (days worked in month / days in month) * (entitlement / 12),
  with the entitlement re-resolved at the first of that month.

WHY PER-MONTH RE-RESOLUTION:
  An employee can cross the five-year threshold mid-period. Accrual before
  and after the threshold must use the rate in force at that time; a single
  end-of-period lookup would misstate every prorated month.

ENTRY POINT:
  AccruedAnnual is what callers use. It picks the accrual start:
  - imported employees: BalanceSetDate, with InitialAnnualBalance added
  - everyone else: HireDate

SEE ALSO:
  - entitlement.go: the per-month rate
  - balance.go: where the accrued total joins the rest of the report
*/
package engine

import "github.com/shopspring/decimal"

var (
	twelve = decimal.NewFromInt(12)
)

// AccrualBetween integrates accrual over [periodStart, effective end],
// where the effective end is asOf clamped to the employee's termination
// date. Returns zero for spans that end before they start.
func AccrualBetween(e Employee, periodStart, asOf Date) decimal.Decimal {
	end := asOf
	if e.EndDate != nil {
		end = MinDate(*e.EndDate, asOf)
	}
	if end.Before(periodStart) {
		return decimal.Zero
	}

	total := decimal.Zero
	for month := periodStart.FirstOfMonth(); month.BeforeOrEqual(end); month = month.AddMonths(1) {
		daysInMonth := month.DaysInMonth()

		workedDays := daysInMonth
		switch {
		case month.SameMonth(periodStart) && month.SameMonth(end):
			workedDays = end.Day() - periodStart.Day() + 1
		case month.SameMonth(periodStart):
			workedDays = daysInMonth - periodStart.Day() + 1
		case month.SameMonth(end):
			workedDays = end.Day()
		}
		if workedDays < 0 {
			workedDays = 0
		}

		monthlyRate := decimal.NewFromInt(int64(AnnualEntitlement(e, month))).Div(twelve)
		fraction := decimal.NewFromInt(int64(workedDays)).Div(decimal.NewFromInt(int64(daysInMonth)))
		total = total.Add(fraction.Mul(monthlyRate))
	}
	return total
}

// AccruedAnnual returns the total annual days accrued by asOf. This is the
// only accrual entry point external callers use.
//
// Employees with an imported opening balance accrue from BalanceSetDate on
// top of InitialAnnualBalance; accrual before the cutover is never
// recomputed. Everyone else accrues from the hire date.
func AccruedAnnual(e Employee, asOf Date) decimal.Decimal {
	if e.InitialAnnualBalance != nil && e.BalanceSetDate != nil {
		return e.InitialAnnualBalance.Add(AccrualBetween(e, *e.BalanceSetDate, asOf))
	}
	return AccrualBetween(e, e.HireDate, asOf)
}
