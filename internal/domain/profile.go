package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RiskProfile is the coarse investor-risk classification that drives the base allocation split
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskBalanced     RiskProfile = "balanced"
	RiskAggressive   RiskProfile = "aggressive"
)

// Normalize lower-cases the profile and maps unknown or blank values to balanced
func (rp RiskProfile) Normalize() RiskProfile {
	switch RiskProfile(strings.ToLower(strings.TrimSpace(string(rp)))) {
	case RiskConservative:
		return RiskConservative
	case RiskAggressive:
		return RiskAggressive
	default:
		return RiskBalanced
	}
}

// Loan represents an outstanding loan; the installment is trusted as supplied
type Loan struct {
	Type         string          `yaml:"type" json:"type"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	TenureMonths int             `yaml:"tenure_months" json:"tenure_months"`
	Installment  decimal.Decimal `yaml:"installment" json:"installment"`     // Monthly EMI
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interest_rate"` // Annual percentage, e.g. 9.5
}

// Goal represents a savings goal with a monthly contribution (SIP)
type Goal struct {
	Name            string          `yaml:"name" json:"name"`
	TargetAmount    decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	MonthsToAchieve int             `yaml:"months_to_achieve" json:"months_to_achieve"`
	CurrentSavings  decimal.Decimal `yaml:"current_savings" json:"current_savings"`
	SIP             decimal.Decimal `yaml:"sip" json:"sip"`
	Priority        int             `yaml:"priority" json:"priority"` // Lower is more urgent; informational only
}

// HouseholdProfile is the caller-supplied input for one planning run
type HouseholdProfile struct {
	Name          string          `yaml:"name" json:"name"`
	Age           int             `yaml:"age" json:"age"`
	Income        decimal.Decimal `yaml:"income" json:"income"`     // Monthly
	Expenses      decimal.Decimal `yaml:"expenses" json:"expenses"` // Monthly
	Dependents    int             `yaml:"dependents" json:"dependents"`
	EmergencyFund decimal.Decimal `yaml:"emergency_fund" json:"emergency_fund"`
	Insurances    []string        `yaml:"insurances" json:"insurances"`
	RiskProfile   RiskProfile     `yaml:"risk_profile" json:"risk_profile"`
	Loans         []Loan          `yaml:"loans" json:"loans"`
	Goals         []Goal          `yaml:"goals" json:"goals"`
}

// TotalEMI returns the sum of all loan installments
func (hp *HouseholdProfile) TotalEMI() decimal.Decimal {
	total := decimal.Zero
	for _, loan := range hp.Loans {
		total = total.Add(loan.Installment)
	}
	return total
}

// HasInsurance reports whether any insurance tag contains one of the keywords (case-insensitive)
func (hp *HouseholdProfile) HasInsurance(keywords ...string) bool {
	return containsAny(hp.Insurances, keywords...)
}

// HasGoal reports whether any goal name contains one of the keywords (case-insensitive)
func (hp *HouseholdProfile) HasGoal(keywords ...string) bool {
	names := make([]string, len(hp.Goals))
	for i, g := range hp.Goals {
		names[i] = g.Name
	}
	return containsAny(names, keywords...)
}

// HasLoan reports whether any loan type contains one of the keywords (case-insensitive)
func (hp *HouseholdProfile) HasLoan(keywords ...string) bool {
	types := make([]string, len(hp.Loans))
	for i, l := range hp.Loans {
		types[i] = l.Type
	}
	return containsAny(types, keywords...)
}

// DeepCopy returns a copy that shares no slices with the receiver
func (hp *HouseholdProfile) DeepCopy() *HouseholdProfile {
	if hp == nil {
		return nil
	}
	cp := *hp
	if hp.Insurances != nil {
		cp.Insurances = append([]string(nil), hp.Insurances...)
	}
	if hp.Loans != nil {
		cp.Loans = append([]Loan(nil), hp.Loans...)
	}
	if hp.Goals != nil {
		cp.Goals = append([]Goal(nil), hp.Goals...)
	}
	return &cp
}

// FindGoal returns the index of the first goal whose name matches exactly (case-insensitive), or -1
func (hp *HouseholdProfile) FindGoal(name string) int {
	for i, g := range hp.Goals {
		if strings.EqualFold(g.Name, name) {
			return i
		}
	}
	return -1
}

func containsAny(values []string, keywords ...string) bool {
	for _, v := range values {
		lv := strings.ToLower(v)
		for _, kw := range keywords {
			if strings.Contains(lv, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}
