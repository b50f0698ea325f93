package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Age risk bands, informational only
const (
	RiskBandHigh   = "high"
	RiskBandMedium = "medium"
	RiskBandLow    = "low"
)

// midGoalMonths is the upper bound (inclusive) of a mid-term goal
const midGoalMonths = 60

// BreakdownGoals groups goal names into short (<=24), mid (<=60) and long (>60) horizons
func BreakdownGoals(goals []domain.Goal) domain.GoalBreakdown {
	bd := domain.GoalBreakdown{
		ShortTerm: []string{},
		MidTerm:   []string{},
		LongTerm:  []string{},
	}
	for _, g := range goals {
		switch {
		case g.MonthsToAchieve <= ShortGoalMonths:
			bd.ShortTerm = append(bd.ShortTerm, g.Name)
		case g.MonthsToAchieve <= midGoalMonths:
			bd.MidTerm = append(bd.MidTerm, g.Name)
		default:
			bd.LongTerm = append(bd.LongTerm, g.Name)
		}
	}
	return bd
}

// AgeRiskBand maps age to a capacity-for-risk band: under 30 high, under 50 medium, otherwise low.
// It never overrides the declared risk profile.
func AgeRiskBand(age int) string {
	switch {
	case age < 30:
		return RiskBandHigh
	case age < 50:
		return RiskBandMedium
	default:
		return RiskBandLow
	}
}
