package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	highExpenseShare    = decimal.NewFromFloat(0.30)
	disabilityIncomeMin = decimal.NewFromInt(50000)
	highInterestRate    = decimal.NewFromInt(10)
	sipSurplusMin       = decimal.NewFromInt(10000)
)

// SuggestionRule is one entry of the gap-analysis table. Evaluate returns zero or
// more suggestions; rules run in table order and results are never de-duplicated.
type SuggestionRule struct {
	Name     string
	Evaluate func(profile *domain.HouseholdProfile, cashflow domain.CashFlowSummary) []domain.Suggestion
}

// Suggest runs the gap-analysis rules with the default assumptions
func Suggest(profile *domain.HouseholdProfile) []domain.Suggestion {
	return SuggestWith(profile, domain.DefaultAssumptions())
}

// SuggestWith runs every rule in SuggestionRules order
func SuggestWith(profile *domain.HouseholdProfile, assumptions domain.Assumptions) []domain.Suggestion {
	cashflow := SummarizeWith(profile, assumptions)
	suggestions := []domain.Suggestion{}
	for _, rule := range SuggestionRules() {
		suggestions = append(suggestions, rule.Evaluate(profile, cashflow)...)
	}
	return suggestions
}

// SuggestionRules returns the rule table in evaluation order
func SuggestionRules() []SuggestionRule {
	return []SuggestionRule{
		{Name: "emergency_fund", Evaluate: suggestEmergencyFund},
		{Name: "life_insurance", Evaluate: suggestLifeInsurance},
		{Name: "health_insurance", Evaluate: suggestHealthInsurance},
		{Name: "auto_insurance", Evaluate: suggestAutoInsurance},
		{Name: "home_insurance", Evaluate: suggestHomeInsurance},
		{Name: "disability_insurance", Evaluate: suggestDisabilityInsurance},
		{Name: "long_term_care", Evaluate: suggestLongTermCare},
		{Name: "travel_insurance", Evaluate: suggestTravelInsurance},
		{Name: "retirement", Evaluate: suggestRetirement},
		{Name: "high_interest_debt", Evaluate: suggestDebtRepayment},
		{Name: "wealth_sip", Evaluate: suggestWealthSIP},
		{Name: "achieved_goals", Evaluate: suggestAchievedGoals},
	}
}

func single(title, rationale string) []domain.Suggestion {
	return []domain.Suggestion{{Title: title, Rationale: rationale}}
}

func suggestEmergencyFund(p *domain.HouseholdProfile, cf domain.CashFlowSummary) []domain.Suggestion {
	if p.EmergencyFund.GreaterThanOrEqual(cf.IdealEmergencyFund) {
		return nil
	}
	return single("Start/Increase Emergency Fund",
		fmt.Sprintf("Your emergency fund of %s is below the recommended %s needed to cover expenses and loan installments.",
			p.EmergencyFund.StringFixed(2), cf.IdealEmergencyFund.StringFixed(2)))
}

func suggestLifeInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if p.Dependents <= 0 || p.HasInsurance("life") {
		return nil
	}
	return single("Get Life Insurance",
		fmt.Sprintf("You have %d dependent(s) and no life cover; a term policy protects them if your income stops.", p.Dependents))
}

func suggestHealthInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if !p.Income.IsPositive() || p.HasInsurance("health") {
		return nil
	}
	return single("Get Health Insurance",
		"Medical emergencies can wipe out savings; a health policy shields your goals from hospital bills.")
}

func suggestAutoInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if !p.HasLoan("car") || p.HasInsurance("auto", "car") {
		return nil
	}
	return single("Get Auto Insurance",
		"You are repaying a car loan without motor cover; damage or theft would leave the loan outstanding.")
}

func suggestHomeInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	highExpenses := p.Expenses.GreaterThan(p.Income.Mul(highExpenseShare))
	if !p.HasGoal("home") && !(highExpenses && !p.HasInsurance("home", "rent")) {
		return nil
	}
	return single("Consider Homeowners or Renters Insurance",
		"Housing is a large share of your plan; cover for the dwelling and its contents protects it.")
}

func suggestDisabilityInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if !p.Income.GreaterThan(disabilityIncomeMin) || p.HasInsurance("disability") {
		return nil
	}
	return single("Get Disability Insurance",
		"Your income is your largest asset; disability cover replaces part of it if you cannot work.")
}

func suggestLongTermCare(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if p.Age < 50 || p.HasInsurance("long-term care") {
		return nil
	}
	return single("Plan for Long-Term Care Insurance",
		"Premiums rise steeply with age; arranging long-term care cover after 50 keeps it affordable.")
}

func suggestTravelInsurance(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	if !p.HasGoal("travel") || p.HasInsurance("travel") {
		return nil
	}
	return single("Consider Travel Insurance",
		"You are saving for travel; trip cover guards against cancellations and medical costs abroad.")
}

func suggestRetirement(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	hasRetirement := p.HasGoal("retirement")
	switch {
	case p.Age >= 30 && !hasRetirement:
		return single("Plan for Retirement Savings",
			fmt.Sprintf("At %d you have no retirement goal; starting early lets compounding do most of the work.", p.Age))
	case p.Age >= 50 && hasRetirement:
		return single("Accelerate Retirement Savings",
			"Retirement is close; raise contributions and review the goal so it is fully funded in time.")
	}
	return nil
}

func suggestDebtRepayment(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	for _, loan := range p.Loans {
		if loan.InterestRate.GreaterThan(highInterestRate) {
			return single("Focus on High-Interest Debt Repayment",
				"At least one loan charges more than 10% a year; prepaying it is a guaranteed return above most investments.")
		}
	}
	return nil
}

func suggestWealthSIP(p *domain.HouseholdProfile, cf domain.CashFlowSummary) []domain.Suggestion {
	if !cf.MonthlySurplus.GreaterThan(sipSurplusMin) || p.HasGoal("sip") {
		return nil
	}
	return single("Start Wealth-Building SIP",
		fmt.Sprintf("You have a monthly surplus of %s; a systematic investment plan puts it to work.", cf.MonthlySurplus.StringFixed(2)))
}

func suggestAchievedGoals(p *domain.HouseholdProfile, _ domain.CashFlowSummary) []domain.Suggestion {
	var out []domain.Suggestion
	for _, g := range p.Goals {
		if g.CurrentSavings.GreaterThanOrEqual(g.TargetAmount) {
			out = append(out, domain.Suggestion{
				Title:     fmt.Sprintf("Goal Already Achieved: %s", g.Name),
				Rationale: fmt.Sprintf("Savings of %s already cover the target of %s; redirect the SIP to other goals.", g.CurrentSavings.StringFixed(2), g.TargetAmount.StringFixed(2)),
			})
		}
	}
	return out
}
