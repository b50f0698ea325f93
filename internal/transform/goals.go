package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustSIP changes a goal's monthly contribution by a signed amount.
// The result is floored at zero.
type AdjustSIP struct {
	Goal   string          // Goal name, matched exactly (case-insensitive)
	Amount decimal.Decimal // Change in monthly contribution; may be negative
}

func (as *AdjustSIP) Name() string {
	return "adjust_sip"
}

func (as *AdjustSIP) Description() string {
	verb := "Increase"
	if as.Amount.IsNegative() {
		verb = "Decrease"
	}
	return fmt.Sprintf("%s the SIP for %s by %s", verb, as.Goal, as.Amount.Abs().StringFixed(2))
}

func (as *AdjustSIP) Validate(base *domain.HouseholdProfile) error {
	if as.Amount.IsZero() {
		return NewTransformError(as.Name(), "validate", "amount cannot be zero", nil)
	}
	return validateGoal(as.Name(), as.Goal, base)
}

func (as *AdjustSIP) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	idx := modified.FindGoal(as.Goal)
	if idx < 0 {
		return nil, NewTransformError(as.Name(), "apply", fmt.Sprintf("goal %s not found", as.Goal), nil)
	}
	modified.Goals[idx].SIP = decimal.Max(decimal.Zero, modified.Goals[idx].SIP.Add(as.Amount))
	return modified, nil
}

// ExtendGoal pushes a goal's horizon out by a number of months
type ExtendGoal struct {
	Goal   string
	Months int
}

func (eg *ExtendGoal) Name() string {
	return "extend_goal"
}

func (eg *ExtendGoal) Description() string {
	return fmt.Sprintf("Extend %s by %d months", eg.Goal, eg.Months)
}

func (eg *ExtendGoal) Validate(base *domain.HouseholdProfile) error {
	if eg.Months <= 0 {
		return NewTransformError(eg.Name(), "validate", fmt.Sprintf("months must be positive, got %d", eg.Months), nil)
	}
	return validateGoal(eg.Name(), eg.Goal, base)
}

func (eg *ExtendGoal) Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error) {
	modified := base.DeepCopy()
	idx := modified.FindGoal(eg.Goal)
	if idx < 0 {
		return nil, NewTransformError(eg.Name(), "apply", fmt.Sprintf("goal %s not found", eg.Goal), nil)
	}
	modified.Goals[idx].MonthsToAchieve += eg.Months
	return modified, nil
}

func validateGoal(name, goal string, base *domain.HouseholdProfile) error {
	if goal == "" {
		return NewTransformError(name, "validate", "goal name cannot be empty", nil)
	}
	if err := validateBase(name, base); err != nil {
		return err
	}
	if base.FindGoal(goal) < 0 {
		return NewTransformError(name, "validate", fmt.Sprintf("goal %s not found in profile", goal), nil)
	}
	return nil
}
