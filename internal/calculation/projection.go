package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// growthPrecision bounds the digits carried by compounded growth factors
const growthPrecision = 24

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Project evaluates a goal under the default return tiers
func Project(goal domain.Goal) domain.GoalProjection {
	return ProjectWith(goal, domain.DefaultAssumptions())
}

// ProjectWith compounds the goal's savings and SIP to its horizon and, when the
// target is missed, attaches the required contribution and the extra months needed.
func ProjectWith(goal domain.Goal, assumptions domain.Assumptions) domain.GoalProjection {
	assumptions = assumptions.WithDefaults()
	horizon := goal.MonthsToAchieve
	annual := assumptions.AnnualRateFor(horizon)
	monthly := MonthlyRate(annual)

	growth := growthFactor(monthly, horizon)
	lumpFV := goal.CurrentSavings.Mul(growth)
	factor := annuityDueFactor(monthly, growth, horizon)
	projected := lumpFV.Add(goal.SIP.Mul(factor))
	feasible := projected.GreaterThanOrEqual(goal.TargetAmount)

	result := domain.GoalProjection{
		Name:                 goal.Name,
		Target:               goal.TargetAmount,
		HorizonMonths:        horizon,
		ExpectedReturnAnnual: annual.Mul(hundred).Round(2),
		ProjectedValue:       projected.Round(2),
		Feasible:             feasible,
	}
	if feasible {
		return result
	}

	rec := &domain.GoalRecommendation{
		SuggestedContribution: RequiredContribution(goal.TargetAmount, lumpFV, factor).Round(2),
	}
	if extra, ok := ExtensionMonths(goal, monthly, assumptions.MaxExtensionMonths); ok {
		rec.ExtendByMonths = &extra
	}
	result.Recommendation = rec
	return result
}

// MonthlyRate converts an annual nominal rate by simple division
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// FutureValue returns the lump-sum plus annuity-due value of savings and sip after months
func FutureValue(savings, sip, monthly decimal.Decimal, months int) decimal.Decimal {
	growth := growthFactor(monthly, months)
	return savings.Mul(growth).Add(sip.Mul(annuityDueFactor(monthly, growth, months)))
}

// RequiredContribution solves the annuity-due equation for the periodic payment that
// closes the gap between target and the compounded lump sum.
func RequiredContribution(target, lumpFV, factor decimal.Decimal) decimal.Decimal {
	gap := target.Sub(lumpFV)
	if factor.IsZero() {
		return gap
	}
	return gap.Div(factor)
}

// ExtensionMonths scans month by month past the horizon, holding the contribution and
// rate fixed, for the first month whose value reaches the target. It reports false if
// maxExtra additional months are not enough.
func ExtensionMonths(goal domain.Goal, monthly decimal.Decimal, maxExtra int) (int, bool) {
	horizon := goal.MonthsToAchieve
	if horizon < 0 {
		horizon = 0
	}
	onePlus := one.Add(monthly)
	growth := growthFactor(monthly, horizon)
	for extra := 1; extra <= maxExtra; extra++ {
		growth = growth.Mul(onePlus).Round(growthPrecision)
		months := horizon + extra
		value := goal.CurrentSavings.Mul(growth).Add(goal.SIP.Mul(annuityDueFactor(monthly, growth, months)))
		if value.GreaterThanOrEqual(goal.TargetAmount) {
			return extra, true
		}
	}
	return 0, false
}

func growthFactor(monthly decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return one
	}
	return one.Add(monthly).Pow(decimal.NewFromInt(int64(months))).Round(growthPrecision)
}

// annuityDueFactor is ((1+r)^n - 1)/r * (1+r); at r = 0 it degrades to n
func annuityDueFactor(monthly, growth decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	if monthly.IsZero() {
		return decimal.NewFromInt(int64(months))
	}
	return growth.Sub(one).Div(monthly).Mul(one.Add(monthly))
}
