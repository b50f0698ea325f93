package output

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PlanMarkdown renders the plan summary as a GitHub-flavoured markdown document
func PlanMarkdown(summary *domain.PlanSummary, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Financial plan: %s\n\n", summary.Name)
	fmt.Fprintf(&sb, "Risk profile **%s**, age risk band **%s**.\n\n", summary.RiskProfile, summary.AgeRiskBand)

	cf := summary.CashFlow
	sb.WriteString("## Cash flow\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Monthly surplus | %s |\n", FormatCurrency(cf.MonthlySurplus, currency))
	fmt.Fprintf(&sb, "| Total EMI | %s |\n", FormatCurrency(cf.TotalEMI, currency))
	fmt.Fprintf(&sb, "| Ideal emergency fund | %s |\n", FormatCurrency(cf.IdealEmergencyFund, currency))
	fmt.Fprintf(&sb, "| Emergency fund adequate | %s |\n\n", yesNo(cf.EmergencyFundOK))

	sb.WriteString("## Goals\n\n")
	if len(summary.Goals) == 0 {
		sb.WriteString("No goals defined.\n\n")
	} else {
		sb.WriteString("| Goal | Target | Months | Rate | Projected | On track | Suggested SIP | Extend by |\n")
		sb.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, g := range summary.Goals {
			suggested, extend := "-", "-"
			if rec := g.Recommendation; rec != nil {
				suggested = FormatCurrency(rec.SuggestedContribution, currency)
				if rec.ExtendByMonths != nil {
					extend = fmt.Sprintf("%d months", *rec.ExtendByMonths)
				}
			}
			fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
				g.Name, FormatCurrency(g.Target, currency), g.HorizonMonths, FormatPercentage(g.ExpectedReturnAnnual),
				FormatCurrency(g.ProjectedValue, currency), yesNo(g.Feasible), suggested, extend)
		}
		sb.WriteString("\n")
	}

	a := summary.Allocation
	sb.WriteString("## Recommended allocation\n\n")
	fmt.Fprintf(&sb, "- Equity: %s%%\n- Bonds: %s%%\n- Commodities: %s%%\n\n", a.Equity, a.Bonds, a.Commodities)

	if len(summary.Suggestions) > 0 {
		sb.WriteString("## Suggestions\n\n")
		for _, s := range summary.Suggestions {
			fmt.Fprintf(&sb, "- **%s**: %s\n", s.Title, s.Rationale)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// MarkdownFormatter emits markdown, optionally rendered for the terminal by glamour
type MarkdownFormatter struct {
	Currency string
	Style    string // glamour standard style; empty leaves the markdown raw
	Width    int
}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("plan summary is required")
	}
	md := PlanMarkdown(summary, m.Currency)
	if m.Style == "" {
		return []byte(md), nil
	}
	out, err := RenderMarkdown(md, m.Style, m.Width)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// RenderMarkdown renders markdown for a terminal with a glamour standard style
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// HTMLFormatter converts the markdown report to a standalone HTML page
type HTMLFormatter struct {
	Currency string
}

func (h HTMLFormatter) Name() string { return "html" }

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("plan summary is required")
	}
	var body bytes.Buffer
	if err := htmlRenderer.Convert([]byte(PlanMarkdown(summary, h.Currency)), &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>Financial plan: %s</title>\n", html.EscapeString(summary.Name))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
