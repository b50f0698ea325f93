package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profile variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 84) + "\n")
	sb.WriteString(fmt.Sprintf("Base Profile: %s\n", compSet.BaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Variant",
		numWidth, "Surplus",
		numWidth, "Goals Met",
		numWidth, "SIP Gap",
		numWidth+2, "Eq/Bd/Cm"))
	sb.WriteString(strings.Repeat("-", 84) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 84) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.VariantName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Monthly Surplus:  %s%s\n",
				tf.deltaSymbol(alt.SurplusDiffFromBase), tf.formatDecimal(alt.SurplusDiffFromBase)))
			if alt.FeasibleGoalsDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Goals Met:        %+d\n", alt.FeasibleGoalsDiff))
			}
			if !alt.SIPGapDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  SIP Gap:          %s%s\n",
					tf.deltaSymbol(alt.SIPGapDiffFromBase), tf.formatDecimal(alt.SIPGapDiffFromBase)))
			}
			if !alt.EquityDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Equity:           %s%s pts\n",
					tf.deltaSymbol(alt.EquityDiffFromBase), alt.EquityDiffFromBase.String()))
			}
			if alt.SuggestionDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Open Suggestions: %+d\n", alt.SuggestionDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.VariantName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.MonthlySurplus),
		numWidth, fmt.Sprintf("%d/%d", result.FeasibleGoals, result.TotalGoals),
		numWidth, tf.formatDecimal(result.SIPGap),
		numWidth+2, fmt.Sprintf("%s/%s/%s", result.Equity, result.Bonds, result.Commodities))
}

// formatDecimal formats a decimal for display with K/M suffixes
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol prefixes positive deltas with +; negatives already carry a sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of goals met per variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.FeasibleGoalsDiff != 0 {
			change = fmt.Sprintf("%+d goals", alt.FeasibleGoalsDiff)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.VariantName, change))
	}

	return sb.String()
}
