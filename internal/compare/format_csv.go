package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"Monthly Surplus",
		"Emergency Fund",
		"Feasible Goals",
		"Total Goals",
		"SIP Gap",
		"Equity",
		"Bonds",
		"Commodities",
		"Suggestions",
		"Surplus Diff from Base",
		"Feasible Goals Diff",
		"SIP Gap Diff",
		"Equity Diff",
		"Suggestion Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, variantType string) []string {
	return []string{
		result.VariantName,
		variantType,
		result.MonthlySurplus.StringFixed(2),
		result.EmergencyFund.StringFixed(2),
		strconv.Itoa(result.FeasibleGoals),
		strconv.Itoa(result.TotalGoals),
		result.SIPGap.StringFixed(2),
		result.Equity.String(),
		result.Bonds.String(),
		result.Commodities.String(),
		strconv.Itoa(result.SuggestionCount),
		result.SurplusDiffFromBase.StringFixed(2),
		strconv.Itoa(result.FeasibleGoalsDiff),
		result.SIPGapDiffFromBase.StringFixed(2),
		result.EquityDiffFromBase.String(),
		strconv.Itoa(result.SuggestionDiff),
	}
}
