package engine

// Annual entitlement tiers. Service of five completed years moves an
// employee from the base rate to the senior rate.
const (
	BaseAnnualDays      = 14
	SeniorAnnualDays    = 21
	SeniorServiceYears  = 5

	// SickAnnualDays is the flat yearly sick grant. Sick leave has no
	// accrual curve.
	SickAnnualDays = 14
)

// ServiceYears returns the completed years of service at asOf. A year
// counts as complete only once the hire anniversary has passed: if the
// anniversary month/day has not yet occurred in asOf's year, one year is
// subtracted. Negative results are possible for asOf before hire; callers
// comparing against tier thresholds treat those the same as zero tenure.
func ServiceYears(hireDate, asOf Date) int {
	years := asOf.Year() - hireDate.Year()
	if asOf.Month() < hireDate.Month() ||
		(asOf.Month() == hireDate.Month() && asOf.Day() < hireDate.Day()) {
		years--
	}
	return years
}

// AnnualEntitlement resolves the annual-leave days/year in force for the
// employee at asOf. A custom allotment overrides the service tiers for the
// employee's entire history.
func AnnualEntitlement(e Employee, asOf Date) int {
	if e.CustomAnnualLeaveDays != nil {
		return *e.CustomAnnualLeaveDays
	}
	if ServiceYears(e.HireDate, asOf) >= SeniorServiceYears {
		return SeniorAnnualDays
	}
	return BaseAnnualDays
}
