package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	pctFloor   = decimal.NewFromInt(10)
	pctCeiling = decimal.NewFromInt(90)
	pctStep    = decimal.NewFromInt(10)
	pctTotal   = decimal.NewFromInt(100)

	lowSurplusRatio  = decimal.NewFromFloat(0.10)
	highSurplusRatio = decimal.NewFromFloat(0.30)
	deficitScale     = decimal.NewFromInt(20)
)

// Horizon thresholds for the goal-horizon skew rule
const (
	ShortGoalMonths = 24
	LongGoalMonths  = 60
	maxAgeEquity    = 110
)

// AllocationContext is the read-only input shared by every allocation rule
type AllocationContext struct {
	Profile  *domain.HouseholdProfile
	CashFlow domain.CashFlowSummary
}

// AllocationRule is one pure step of the allocation pipeline
type AllocationRule struct {
	Name  string
	Apply func(alloc domain.AllocationResult, ctx AllocationContext) domain.AllocationResult
}

// AllocationRules returns the adjustment pipeline in the order it must run.
// Reordering changes results.
func AllocationRules() []AllocationRule {
	return []AllocationRule{
		{Name: "age_ceiling", Apply: applyAgeCeiling},
		{Name: "emergency_fund_deficit", Apply: applyEmergencyFundDeficit},
		{Name: "surplus_ratio", Apply: applySurplusRatio},
		{Name: "goal_horizon_skew", Apply: applyGoalHorizonSkew},
		{Name: "normalize", Apply: normalizeAllocation},
	}
}

// BaseAllocation returns the starting split for a risk profile; unknown profiles are balanced
func BaseAllocation(rp domain.RiskProfile) domain.AllocationResult {
	switch rp.Normalize() {
	case domain.RiskConservative:
		return domain.NewAllocation(30, 60, 10)
	case domain.RiskAggressive:
		return domain.NewAllocation(70, 20, 10)
	default:
		return domain.NewAllocation(50, 40, 10)
	}
}

// Allocate computes the normalized equity/bonds/commodities split for a profile
func Allocate(profile *domain.HouseholdProfile, cashflow domain.CashFlowSummary) domain.AllocationResult {
	return allocate(profile, cashflow, NopLogger{})
}

func allocate(profile *domain.HouseholdProfile, cashflow domain.CashFlowSummary, logger Logger) domain.AllocationResult {
	ctx := AllocationContext{Profile: profile, CashFlow: cashflow}
	alloc := BaseAllocation(profile.RiskProfile)
	logger.Debugf("allocation base (%s): %s", profile.RiskProfile.Normalize(), formatAllocation(alloc))
	for _, rule := range AllocationRules() {
		alloc = rule.Apply(alloc, ctx)
		logger.Debugf("allocation after %s: %s", rule.Name, formatAllocation(alloc))
	}
	return alloc
}

// EquityCeilingForAge is max(0, 110 - age)
func EquityCeilingForAge(age int) decimal.Decimal {
	ceiling := maxAgeEquity - age
	if ceiling < 0 {
		ceiling = 0
	}
	return decimal.NewFromInt(int64(ceiling))
}

func applyAgeCeiling(alloc domain.AllocationResult, ctx AllocationContext) domain.AllocationResult {
	ceiling := EquityCeilingForAge(ctx.Profile.Age)
	if alloc.Equity.GreaterThan(ceiling) {
		shift := alloc.Equity.Sub(ceiling)
		alloc.Equity = ceiling
		alloc.Bonds = alloc.Bonds.Add(shift)
	}
	return alloc
}

// EmergencyDeficitRatio is max(0, (ideal - fund) / ideal), or 0 when the ideal fund is zero
func EmergencyDeficitRatio(fund decimal.Decimal, cashflow domain.CashFlowSummary) decimal.Decimal {
	ideal := cashflow.IdealEmergencyFund
	if !ideal.IsPositive() {
		return decimal.Zero
	}
	ratio := ideal.Sub(fund).Div(ideal)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	return ratio
}

func applyEmergencyFundDeficit(alloc domain.AllocationResult, ctx AllocationContext) domain.AllocationResult {
	ratio := EmergencyDeficitRatio(ctx.Profile.EmergencyFund, ctx.CashFlow)
	if !ratio.IsPositive() {
		return alloc
	}
	cut := ratio.Mul(deficitScale).RoundBank(0)
	alloc.Equity = decimal.Max(pctFloor, alloc.Equity.Sub(cut))
	alloc.Bonds = decimal.Min(pctCeiling, alloc.Bonds.Add(cut))
	return alloc
}

// SurplusRatio is monthly surplus over income; ok is false when income is zero
func SurplusRatio(income decimal.Decimal, cashflow domain.CashFlowSummary) (decimal.Decimal, bool) {
	if income.IsZero() {
		return decimal.Zero, false
	}
	return cashflow.MonthlySurplus.Div(income), true
}

func applySurplusRatio(alloc domain.AllocationResult, ctx AllocationContext) domain.AllocationResult {
	ratio, ok := SurplusRatio(ctx.Profile.Income, ctx.CashFlow)
	if !ok {
		return alloc
	}
	switch {
	case ratio.LessThan(lowSurplusRatio):
		alloc.Equity = decimal.Max(pctFloor, alloc.Equity.Sub(pctStep))
		alloc.Bonds = alloc.Bonds.Add(pctStep)
	case ratio.GreaterThan(highSurplusRatio):
		alloc.Equity = decimal.Min(pctCeiling, alloc.Equity.Add(pctStep))
		alloc.Bonds = decimal.Max(decimal.Zero, alloc.Bonds.Sub(pctStep))
	}
	return alloc
}

// GoalHorizonCounts returns the number of goals due within 24 months and beyond 60 months
func GoalHorizonCounts(goals []domain.Goal) (short, long int) {
	for _, g := range goals {
		if g.MonthsToAchieve <= ShortGoalMonths {
			short++
		}
		if g.MonthsToAchieve >= LongGoalMonths {
			long++
		}
	}
	return short, long
}

func applyGoalHorizonSkew(alloc domain.AllocationResult, ctx AllocationContext) domain.AllocationResult {
	short, long := GoalHorizonCounts(ctx.Profile.Goals)
	if short > long {
		alloc.Equity = decimal.Max(pctFloor, alloc.Equity.Sub(pctStep))
		alloc.Bonds = decimal.Min(pctCeiling, alloc.Bonds.Add(pctStep))
	}
	return alloc
}

// normalizeAllocation pushes any drift from 100 into commodities. No floor is applied,
// so commodities can turn negative when equity and bonds already exceed 100.
func normalizeAllocation(alloc domain.AllocationResult, _ AllocationContext) domain.AllocationResult {
	diff := pctTotal.Sub(alloc.Sum())
	if !diff.IsZero() {
		alloc.Commodities = alloc.Commodities.Add(diff)
	}
	return alloc
}

func formatAllocation(alloc domain.AllocationResult) string {
	return fmt.Sprintf("equity=%s bonds=%s commodities=%s", alloc.Equity, alloc.Bonds, alloc.Commodities)
}
