package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// PlanningEngine orchestrates the cash-flow, projection, allocation and suggestion models.
// It holds no per-request state, so one engine may serve concurrent callers.
type PlanningEngine struct {
	Assumptions domain.Assumptions
	Logger      Logger
	Debug       bool // Enable debug output for detailed calculations
}

// NewPlanningEngine creates an engine with the default assumptions
func NewPlanningEngine() *PlanningEngine {
	return NewPlanningEngineWithAssumptions(domain.DefaultAssumptions())
}

// NewPlanningEngineWithAssumptions creates an engine with custom return tiers and caps
func NewPlanningEngineWithAssumptions(assumptions domain.Assumptions) *PlanningEngine {
	return &PlanningEngine{
		Assumptions: assumptions.WithDefaults(),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (pe *PlanningEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Summarize derives the cash-flow scalars for a profile
func (pe *PlanningEngine) Summarize(profile *domain.HouseholdProfile) domain.CashFlowSummary {
	return SummarizeWith(profile, pe.Assumptions)
}

// Project evaluates one goal
func (pe *PlanningEngine) Project(goal domain.Goal) domain.GoalProjection {
	gp := ProjectWith(goal, pe.Assumptions)
	if pe.Debug {
		pe.Logger.Debugf("goal %q: horizon=%d rate=%s%% projected=%s target=%s feasible=%t",
			goal.Name, gp.HorizonMonths, gp.ExpectedReturnAnnual.StringFixed(2),
			gp.ProjectedValue.StringFixed(2), gp.Target.StringFixed(2), gp.Feasible)
	}
	return gp
}

// ProjectAll evaluates every goal of the profile in order
func (pe *PlanningEngine) ProjectAll(profile *domain.HouseholdProfile) []domain.GoalProjection {
	out := make([]domain.GoalProjection, 0, len(profile.Goals))
	for _, g := range profile.Goals {
		out = append(out, pe.Project(g))
	}
	return out
}

// Allocate computes the recommended allocation
func (pe *PlanningEngine) Allocate(profile *domain.HouseholdProfile, cashflow domain.CashFlowSummary) domain.AllocationResult {
	logger := Logger(NopLogger{})
	if pe.Debug {
		logger = pe.Logger
	}
	return allocate(profile, cashflow, logger)
}

// Suggest runs the gap-analysis rules
func (pe *PlanningEngine) Suggest(profile *domain.HouseholdProfile) []domain.Suggestion {
	return SuggestWith(profile, pe.Assumptions)
}

// Analyze runs every model over the profile and assembles the plan summary.
// Business data never causes an error; only a missing profile does.
func (pe *PlanningEngine) Analyze(profile *domain.HouseholdProfile) (*domain.PlanSummary, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}

	cashflow := pe.Summarize(profile)
	pe.Logger.Infof("analyzing %s: surplus=%s ideal_emergency_fund=%s emergency_fund_ok=%t",
		profile.Name, cashflow.MonthlySurplus.StringFixed(2), cashflow.IdealEmergencyFund.StringFixed(2), cashflow.EmergencyFundOK)

	loanTypes := make([]string, 0, len(profile.Loans))
	for _, l := range profile.Loans {
		loanTypes = append(loanTypes, l.Type)
	}

	summary := &domain.PlanSummary{
		Name:          profile.Name,
		RiskProfile:   profile.RiskProfile.Normalize(),
		AgeRiskBand:   AgeRiskBand(profile.Age),
		CashFlow:      cashflow,
		Goals:         pe.ProjectAll(profile),
		Allocation:    pe.Allocate(profile, cashflow),
		Suggestions:   pe.Suggest(profile),
		GoalBreakdown: BreakdownGoals(profile.Goals),
		LoanTypes:     loanTypes,
	}

	if summary.Allocation.Commodities.IsNegative() {
		pe.Logger.Warnf("allocation for %s left commodities at %s after normalization",
			profile.Name, summary.Allocation.Commodities.String())
	}
	pe.Logger.Infof("analysis complete for %s: %d/%d goals feasible, %d suggestions",
		profile.Name, summary.FeasibleGoals(), len(summary.Goals), len(summary.Suggestions))

	return summary, nil
}
