package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter produces a styled terminal report
type ConsoleFormatter struct {
	Currency string
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("plan summary is required")
	}
	cur := c.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	money := func(d decimal.Decimal) string { return FormatCurrency(d, cur) }

	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render("FINANCIAL PLAN: "+summary.Name))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Risk profile: %s | Age risk band: %s\n\n", summary.RiskProfile, summary.AgeRiskBand)

	cf := summary.CashFlow
	fmt.Fprintln(&buf, sectionStyle.Render("CASH FLOW"))
	writeField(&buf, "Monthly Surplus:", statusStyle(!cf.MonthlySurplus.IsNegative()).Render(money(cf.MonthlySurplus)))
	writeField(&buf, "Total EMI:", money(cf.TotalEMI))
	writeField(&buf, "Ideal Emergency Fund:", money(cf.IdealEmergencyFund))
	status := "SHORT"
	if cf.EmergencyFundOK {
		status = "OK"
	}
	writeField(&buf, "Emergency Fund Status:", statusStyle(cf.EmergencyFundOK).Render(status))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("GOAL ANALYSIS"))
	if len(summary.Goals) == 0 {
		fmt.Fprintln(&buf, mutedStyle.Render("  No goals defined"))
	} else {
		fmt.Fprintln(&buf, tableHeaderStyle.Render(fmt.Sprintf("  %-22s %16s %8s %8s %16s %10s",
			"Goal", "Target", "Months", "Rate", "Projected", "Status")))
		for _, g := range summary.Goals {
			verdict := "ON TRACK"
			if !g.Feasible {
				verdict = "SHORT"
			}
			fmt.Fprintf(&buf, "  %-22s %16s %8d %8s %16s %10s\n",
				truncate(g.Name, 22), money(g.Target), g.HorizonMonths, FormatPercentage(g.ExpectedReturnAnnual),
				money(g.ProjectedValue), statusStyle(g.Feasible).Render(verdict))
			if rec := g.Recommendation; rec != nil {
				fmt.Fprintf(&buf, "    -> Suggested SIP: %s/month\n", money(rec.SuggestedContribution))
				if rec.ExtendByMonths != nil {
					fmt.Fprintf(&buf, "    -> Or extend the horizon by %d months\n", *rec.ExtendByMonths)
				} else {
					fmt.Fprintln(&buf, mutedStyle.Render("    -> No extension within the search window reaches the target"))
				}
			}
		}
		fmt.Fprintf(&buf, "  %d of %d goals on track\n", summary.FeasibleGoals(), len(summary.Goals))
	}
	fmt.Fprintln(&buf)

	a := summary.Allocation
	fmt.Fprintln(&buf, sectionStyle.Render("RECOMMENDED ALLOCATION"))
	writeField(&buf, "Equity:", a.Equity.String()+"%")
	writeField(&buf, "Bonds:", a.Bonds.String()+"%")
	commodities := a.Commodities.String() + "%"
	if a.Commodities.IsNegative() {
		commodities = negativeStyle.Render(commodities)
	}
	writeField(&buf, "Commodities:", commodities)
	fmt.Fprintln(&buf)

	b := summary.GoalBreakdown
	fmt.Fprintln(&buf, sectionStyle.Render("GOAL HORIZONS"))
	writeField(&buf, "Short term (<= 24m):", joinOrDash(b.ShortTerm))
	writeField(&buf, "Mid term (<= 60m):", joinOrDash(b.MidTerm))
	writeField(&buf, "Long term (> 60m):", joinOrDash(b.LongTerm))
	if len(summary.LoanTypes) > 0 {
		writeField(&buf, "Loan obligations:", strings.Join(summary.LoanTypes, ", "))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("SUGGESTIONS"))
	if len(summary.Suggestions) == 0 {
		fmt.Fprintln(&buf, positiveStyle.Render("  No gaps found"))
	}
	for i, s := range summary.Suggestions {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, s.Title)
		fmt.Fprintf(&buf, "     %s\n", mutedStyle.Render(s.Rationale))
	}

	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %s%s\n", labelStyle.Render(label), value)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
