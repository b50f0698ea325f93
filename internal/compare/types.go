package compare

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one profile variant with its calculated metrics
type ComparisonResult struct {
	VariantName string              `json:"variantName"`
	Description string              `json:"description"`
	Summary     *domain.PlanSummary `json:"-"`

	// Key Metrics
	MonthlySurplus  decimal.Decimal `json:"monthlySurplus"`
	EmergencyFund   decimal.Decimal `json:"emergencyFund"`
	EmergencyFundOK bool            `json:"emergencyFundOk"`
	FeasibleGoals   int             `json:"feasibleGoals"`
	TotalGoals      int             `json:"totalGoals"`
	SIPGap          decimal.Decimal `json:"sipGap"` // Extra monthly contribution needed across infeasible goals
	Equity          decimal.Decimal `json:"equity"`
	Bonds           decimal.Decimal `json:"bonds"`
	Commodities     decimal.Decimal `json:"commodities"`
	SuggestionCount int             `json:"suggestionCount"`

	// Comparison to Base
	SurplusDiffFromBase decimal.Decimal `json:"surplusDiffFromBase"`
	FeasibleGoalsDiff   int             `json:"feasibleGoalsDiff"`
	SIPGapDiffFromBase  decimal.Decimal `json:"sipGapDiffFromBase"`
	EquityDiffFromBase  decimal.Decimal `json:"equityDiffFromBase"`
	SuggestionDiff      int             `json:"suggestionDiff"`
}

// ComparisonSet represents a base profile and its what-if variants
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from plan summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a plan summary
func (mc *MetricsCalculator) CalculateMetrics(name string, profile *domain.HouseholdProfile, summary *domain.PlanSummary) ComparisonResult {
	return ComparisonResult{
		VariantName:     name,
		Summary:         summary,
		MonthlySurplus:  summary.CashFlow.MonthlySurplus,
		EmergencyFund:   profile.EmergencyFund,
		EmergencyFundOK: summary.CashFlow.EmergencyFundOK,
		FeasibleGoals:   summary.FeasibleGoals(),
		TotalGoals:      len(summary.Goals),
		SIPGap:          mc.calculateSIPGap(profile, summary),
		Equity:          summary.Allocation.Equity,
		Bonds:           summary.Allocation.Bonds,
		Commodities:     summary.Allocation.Commodities,
		SuggestionCount: len(summary.Suggestions),
	}
}

// CalculateComparison computes deltas between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(variant, base ComparisonResult) ComparisonResult {
	variant.SurplusDiffFromBase = variant.MonthlySurplus.Sub(base.MonthlySurplus)
	variant.FeasibleGoalsDiff = variant.FeasibleGoals - base.FeasibleGoals
	variant.SIPGapDiffFromBase = variant.SIPGap.Sub(base.SIPGap)
	variant.EquityDiffFromBase = variant.Equity.Sub(base.Equity)
	variant.SuggestionDiff = variant.SuggestionCount - base.SuggestionCount
	return variant
}

// calculateSIPGap sums suggested contribution minus current SIP over infeasible goals
func (mc *MetricsCalculator) calculateSIPGap(profile *domain.HouseholdProfile, summary *domain.PlanSummary) decimal.Decimal {
	total := decimal.Zero
	for i, gp := range summary.Goals {
		if gp.Feasible || gp.Recommendation == nil || i >= len(profile.Goals) {
			continue
		}
		gap := gp.Recommendation.SuggestedContribution.Sub(profile.Goals[i].SIP)
		if gap.IsPositive() {
			total = total.Add(gap)
		}
	}
	return total
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Most feasible goals
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FeasibleGoals > best.FeasibleGoals {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Goals Met: %s reaches %d of %d goals (%+d vs base)",
				best.VariantName, best.FeasibleGoals, best.TotalGoals, best.FeasibleGoals-compSet.BaseResult.FeasibleGoals))
	}

	// Smallest contribution gap
	lowestGap := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SIPGap.LessThan(lowestGap.SIPGap) {
			lowestGap = alt
		}
	}
	if lowestGap != compSet.BaseResult {
		saved := compSet.BaseResult.SIPGap.Sub(lowestGap.SIPGap)
		recommendations = append(recommendations,
			"Smallest SIP Gap: "+lowestGap.VariantName+" needs "+saved.StringFixed(0)+" less per month to stay on track")
	}

	// Fewest open gaps
	fewest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SuggestionCount < fewest.SuggestionCount {
			fewest = alt
		}
	}
	if fewest != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Fewest Gaps: %s leaves %d open suggestions", fewest.VariantName, fewest.SuggestionCount))
	}

	return recommendations
}
