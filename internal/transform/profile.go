package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRiskProfile replaces the declared risk profile
type SetRiskProfile struct {
	Profile domain.RiskProfile
}

func (srp *SetRiskProfile) Name() string {
	return "set_risk_profile"
}

func (srp *SetRiskProfile) Description() string {
	return fmt.Sprintf("Set risk profile to %s", srp.Profile)
}

func (srp *SetRiskProfile) Validate(base *domain.HouseholdProfile) error {
	switch domain.RiskProfile(strings.ToLower(string(srp.Profile))) {
	case domain.RiskConservative, domain.RiskBalanced, domain.RiskAggressive:
	default:
		return NewTransformError(srp.Name(), "validate",
			fmt.Sprintf("risk profile must be conservative, balanced or aggressive, got %q", srp.Profile), nil)
	}
	return validateBase(srp.Name(), base)
}

func (srp *SetRiskProfile) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	modified.RiskProfile = srp.Profile.Normalize()
	return modified, nil
}

// SetIncome replaces the monthly income
type SetIncome struct {
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set monthly income to %s", si.Amount.StringFixed(2))
}

func (si *SetIncome) Validate(base *domain.HouseholdProfile) error {
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("income cannot be negative, got %s", si.Amount), nil)
	}
	return validateBase(si.Name(), base)
}

func (si *SetIncome) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	modified.Income = si.Amount
	return modified, nil
}

// AddEmergencyFund tops up the emergency reserve
type AddEmergencyFund struct {
	Amount decimal.Decimal
}

func (aef *AddEmergencyFund) Name() string {
	return "add_emergency_fund"
}

func (aef *AddEmergencyFund) Description() string {
	return fmt.Sprintf("Add %s to the emergency fund", aef.Amount.StringFixed(2))
}

func (aef *AddEmergencyFund) Validate(base *domain.HouseholdProfile) error {
	if !aef.Amount.IsPositive() {
		return NewTransformError(aef.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", aef.Amount), nil)
	}
	return validateBase(aef.Name(), base)
}

func (aef *AddEmergencyFund) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	modified.EmergencyFund = modified.EmergencyFund.Add(aef.Amount)
	return modified, nil
}

// AddInsurance records a new insurance tag; adding an existing tag is a no-op
type AddInsurance struct {
	Tag string
}

func (ai *AddInsurance) Name() string {
	return "add_insurance"
}

func (ai *AddInsurance) Description() string {
	return fmt.Sprintf("Add %s insurance", ai.Tag)
}

func (ai *AddInsurance) Validate(base *domain.HouseholdProfile) error {
	if strings.TrimSpace(ai.Tag) == "" {
		return NewTransformError(ai.Name(), "validate", "insurance tag cannot be empty", nil)
	}
	return validateBase(ai.Name(), base)
}

func (ai *AddInsurance) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	for _, existing := range modified.Insurances {
		if strings.EqualFold(existing, ai.Tag) {
			return modified, nil
		}
	}
	modified.Insurances = append(modified.Insurances, strings.TrimSpace(ai.Tag))
	return modified, nil
}

// CloseLoan removes every loan whose type matches exactly (case-insensitive)
type CloseLoan struct {
	Type string
}

func (cl *CloseLoan) Name() string {
	return "close_loan"
}

func (cl *CloseLoan) Description() string {
	return fmt.Sprintf("Close the %s loan", cl.Type)
}

func (cl *CloseLoan) Validate(base *domain.HouseholdProfile) error {
	if cl.Type == "" {
		return NewTransformError(cl.Name(), "validate", "loan type cannot be empty", nil)
	}
	if err := validateBase(cl.Name(), base); err != nil {
		return err
	}
	for _, loan := range base.Loans {
		if strings.EqualFold(loan.Type, cl.Type) {
			return nil
		}
	}
	return NewTransformError(cl.Name(), "validate", fmt.Sprintf("loan %s not found in profile", cl.Type), nil)
}

func (cl *CloseLoan) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	kept := modified.Loans[:0]
	for _, loan := range modified.Loans {
		if !strings.EqualFold(loan.Type, cl.Type) {
			kept = append(kept, loan)
		}
	}
	modified.Loans = kept
	return modified, nil
}
