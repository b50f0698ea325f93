package domain

import (
	"github.com/shopspring/decimal"
)

// CashFlowSummary holds the monthly scalars derived from income, expenses and loans
type CashFlowSummary struct {
	TotalEMI           decimal.Decimal `yaml:"total_emi" json:"total_emi"`
	MonthlySurplus     decimal.Decimal `yaml:"monthly_surplus" json:"monthly_surplus"` // May be negative
	IdealEmergencyFund decimal.Decimal `yaml:"ideal_emergency_fund" json:"ideal_emergency_fund"`
	EmergencyFundOK    bool            `yaml:"emergency_fund_ok" json:"emergency_fund_ok"`
}

// GoalRecommendation is the corrective action attached to an infeasible goal.
// ExtendByMonths is nil when no extension within the search cap reaches the target.
type GoalRecommendation struct {
	SuggestedContribution decimal.Decimal `yaml:"suggested_contribution" json:"suggested_contribution"`
	ExtendByMonths        *int            `yaml:"extend_by_months,omitempty" json:"extend_by_months,omitempty"`
}

// GoalProjection is the engine's verdict for a single goal
type GoalProjection struct {
	Name                 string              `yaml:"name" json:"name"`
	Target               decimal.Decimal     `yaml:"target" json:"target"`
	HorizonMonths        int                 `yaml:"horizon_months" json:"horizon_months"`
	ExpectedReturnAnnual decimal.Decimal     `yaml:"expected_return_annual" json:"expected_return_annual"` // Percentage, e.g. 8.00
	ProjectedValue       decimal.Decimal     `yaml:"projected_value" json:"projected_value"`
	Feasible             bool                `yaml:"feasible" json:"feasible"`
	Recommendation       *GoalRecommendation `yaml:"recommendation,omitempty" json:"recommendation,omitempty"`
}

// AllocationResult is a target split in percentage points across the three asset classes
type AllocationResult struct {
	Equity      decimal.Decimal `yaml:"equity" json:"equity"`
	Bonds       decimal.Decimal `yaml:"bonds" json:"bonds"`
	Commodities decimal.Decimal `yaml:"commodities" json:"commodities"`
}

// NewAllocation builds an allocation from whole percentage points
func NewAllocation(equity, bonds, commodities int64) AllocationResult {
	return AllocationResult{
		Equity:      decimal.NewFromInt(equity),
		Bonds:       decimal.NewFromInt(bonds),
		Commodities: decimal.NewFromInt(commodities),
	}
}

// Sum returns equity + bonds + commodities
func (ar AllocationResult) Sum() decimal.Decimal {
	return ar.Equity.Add(ar.Bonds).Add(ar.Commodities)
}

// Equal reports whether both allocations carry the same values
func (ar AllocationResult) Equal(other AllocationResult) bool {
	return ar.Equity.Equal(other.Equity) && ar.Bonds.Equal(other.Bonds) && ar.Commodities.Equal(other.Commodities)
}

// Suggestion is a (title, rationale) pair produced by the goal suggestion rules
type Suggestion struct {
	Title     string `yaml:"title" json:"title"`
	Rationale string `yaml:"rationale" json:"rationale"`
}

// GoalBreakdown groups goal names by horizon
type GoalBreakdown struct {
	ShortTerm []string `yaml:"short_term_goals" json:"short_term_goals"` // <= 24 months
	MidTerm   []string `yaml:"mid_term_goals" json:"mid_term_goals"`     // <= 60 months
	LongTerm  []string `yaml:"long_term_goals" json:"long_term_goals"`   // > 60 months
}

// PlanSummary is the full output of one analysis run
type PlanSummary struct {
	Name          string           `yaml:"name" json:"name"`
	RiskProfile   RiskProfile      `yaml:"risk_profile" json:"risk_profile"`
	AgeRiskBand   string           `yaml:"age_risk_band" json:"age_risk_band"`
	CashFlow      CashFlowSummary  `yaml:"cash_flow" json:"cash_flow"`
	Goals         []GoalProjection `yaml:"goal_analysis" json:"goal_analysis"`
	Allocation    AllocationResult `yaml:"recommended_allocation" json:"recommended_allocation"`
	Suggestions   []Suggestion     `yaml:"suggested_goals" json:"suggested_goals"`
	GoalBreakdown GoalBreakdown    `yaml:"goal_breakdown" json:"goal_breakdown"`
	LoanTypes     []string         `yaml:"loan_obligations" json:"loan_obligations"`
}

// FeasibleGoals counts goals whose projection meets the target
func (ps *PlanSummary) FeasibleGoals() int {
	n := 0
	for _, g := range ps.Goals {
		if g.Feasible {
			n++
		}
	}
	return n
}
