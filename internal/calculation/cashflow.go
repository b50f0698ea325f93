package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives the monthly surplus and emergency-fund target using the default assumptions
func Summarize(profile *domain.HouseholdProfile) domain.CashFlowSummary {
	return SummarizeWith(profile, domain.DefaultAssumptions())
}

// SummarizeWith derives the monthly surplus and emergency-fund target.
// Surplus is income - expenses - total EMI and may be negative.
func SummarizeWith(profile *domain.HouseholdProfile, assumptions domain.Assumptions) domain.CashFlowSummary {
	assumptions = assumptions.WithDefaults()
	totalEMI := profile.TotalEMI()
	surplus := profile.Income.Sub(profile.Expenses).Sub(totalEMI)
	ideal := decimal.NewFromInt(int64(assumptions.EmergencyFundMonths)).Mul(profile.Expenses.Add(totalEMI))

	return domain.CashFlowSummary{
		TotalEMI:           totalEMI,
		MonthlySurplus:     surplus,
		IdealEmergencyFund: ideal,
		EmergencyFundOK:    profile.EmergencyFund.GreaterThanOrEqual(ideal),
	}
}
