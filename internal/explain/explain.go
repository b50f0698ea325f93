// Package explain turns a computed plan into free-text commentary. It is optional:
// nothing in the planning engine depends on it.
package explain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/catalog"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
)

// ErrNoExplainer is returned when no explanation backend is configured
var ErrNoExplainer = errors.New("no explainer configured")

// ExplainError wraps a backend failure
type ExplainError struct {
	Provider string
	Err      error
}

func (e *ExplainError) Error() string {
	return fmt.Sprintf("%s explainer failed: %v", e.Provider, e.Err)
}

func (e *ExplainError) Unwrap() error { return e.Err }

// Request carries everything an explainer may use. Summary is required.
type Request struct {
	Summary    *domain.PlanSummary
	Question   string
	Instrument *catalog.Instrument
	Currency   string
}

// Explainer produces commentary for an already computed plan
type Explainer interface {
	Explain(ctx context.Context, req Request) (string, error)
}

// Explain calls e, reporting ErrNoExplainer for a nil explainer
func Explain(ctx context.Context, e Explainer, req Request) (string, error) {
	if e == nil {
		return "", ErrNoExplainer
	}
	if req.Summary == nil {
		return "", fmt.Errorf("plan summary is required")
	}
	return e.Explain(ctx, req)
}

const defaultQuestion = "Explain this plan: which goals are on track, why the allocation looks the way it does, and what to do first."

// ProfileDigest renders the short profile description used as model context
func ProfileDigest(summary *domain.PlanSummary, currency string) string {
	if currency == "" {
		currency = output.DefaultCurrency
	}
	cf := summary.CashFlow
	adequate := "no"
	if cf.EmergencyFundOK {
		adequate = "yes"
	}
	lines := []string{
		"Name: " + summary.Name,
		"Risk Profile: " + string(summary.RiskProfile),
		"Age Risk Band: " + summary.AgeRiskBand,
		"Monthly Surplus: " + output.FormatCurrency(cf.MonthlySurplus, currency),
		"Emergency Fund Adequate: " + adequate,
	}

	b := summary.GoalBreakdown
	if len(b.ShortTerm)+len(b.MidTerm)+len(b.LongTerm) > 0 {
		lines = append(lines, "", "Goals:")
		lines = append(lines, "- Short Term: "+joinOrNone(b.ShortTerm))
		lines = append(lines, "- Mid Term: "+joinOrNone(b.MidTerm))
		lines = append(lines, "- Long Term: "+joinOrNone(b.LongTerm))
	}
	if len(summary.LoanTypes) > 0 {
		lines = append(lines, "", "Active Loans: "+strings.Join(summary.LoanTypes, ", "))
	}
	return strings.Join(lines, "\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// BuildPrompt assembles the model prompt from sections separated by blank lines
func BuildPrompt(req Request) string {
	s := req.Summary
	if req.Currency == "" {
		req.Currency = output.DefaultCurrency
	}
	parts := []string{
		"You are a financial advisor explaining a computed plan to a client. Use only the figures given; do not recompute them.",
		"=== USER PROFILE ===\n" + ProfileDigest(s, req.Currency),
	}

	var goals strings.Builder
	for _, g := range s.Goals {
		fmt.Fprintf(&goals, "- %s: target %s in %d months at %s, projected %s",
			g.Name, output.FormatCurrency(g.Target, req.Currency), g.HorizonMonths,
			output.FormatPercentage(g.ExpectedReturnAnnual), output.FormatCurrency(g.ProjectedValue, req.Currency))
		if g.Feasible {
			goals.WriteString(", on track\n")
			continue
		}
		fmt.Fprintf(&goals, ", short; needs %s/month", output.FormatCurrency(g.Recommendation.SuggestedContribution, req.Currency))
		if g.Recommendation.ExtendByMonths != nil {
			fmt.Fprintf(&goals, " or %d more months", *g.Recommendation.ExtendByMonths)
		}
		goals.WriteString("\n")
	}
	if goals.Len() > 0 {
		parts = append(parts, "=== GOAL ANALYSIS ===\n"+strings.TrimRight(goals.String(), "\n"))
	}

	a := s.Allocation
	parts = append(parts, fmt.Sprintf("=== RECOMMENDED ALLOCATION ===\nEquity: %s%%\nBonds: %s%%\nCommodities: %s%%",
		a.Equity, a.Bonds, a.Commodities))

	if len(s.Suggestions) > 0 {
		titles := make([]string, 0, len(s.Suggestions))
		for _, sg := range s.Suggestions {
			titles = append(titles, "- "+sg.Title)
		}
		parts = append(parts, "=== SUGGESTIONS ===\n"+strings.Join(titles, "\n"))
	}

	if inst := req.Instrument; inst != nil {
		parts = append(parts, "=== FUND NAME ===\n"+inst.Name)
		parts = append(parts, "=== FUND METADATA ===\n"+instrumentMetadata(*inst))
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = defaultQuestion
	}
	parts = append(parts, "=== USER QUESTION ===\n"+question)

	return strings.Join(parts, "\n\n")
}

func instrumentMetadata(inst catalog.Instrument) string {
	lines := []string{
		"category: " + inst.Category,
		"sub_category: " + inst.SubCategory,
		"risk_level: " + inst.RiskLevel,
		"benchmark: " + inst.Benchmark,
		"fund_house: " + inst.FundHouse,
		"expense_ratio: " + inst.ExpenseRatio.String(),
	}
	periods := make([]string, 0, len(inst.Returns))
	for p := range inst.Returns {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for _, p := range periods {
		lines = append(lines, "returns_"+p+": "+inst.Returns[p].String())
	}
	if inst.ExitLoad != "" {
		lines = append(lines, "exit_load: "+inst.ExitLoad)
	}
	return strings.Join(lines, "\n")
}

var errEmptyResponse = errors.New("empty response")
