package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a configuration document. JSON input is
// accepted since it is valid YAML.
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.ValidateProfile(&config.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if config.Assumptions != nil {
		if err := ip.validateAssumptions(config.Assumptions); err != nil {
			return fmt.Errorf("assumptions validation failed: %w", err)
		}
	}
	if config.Currency != "" && money.GetCurrency(strings.ToUpper(config.Currency)) == nil {
		return fmt.Errorf("unknown currency code %q", config.Currency)
	}
	return nil
}

// ValidateProfile checks required fields and basic ranges. The engine itself
// never rejects business data, so this is the only gate for malformed input.
func (ip *InputParser) ValidateProfile(profile *domain.HouseholdProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if profile.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if profile.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	if profile.Income.IsNegative() {
		return fmt.Errorf("income cannot be negative")
	}
	if profile.Expenses.IsNegative() {
		return fmt.Errorf("expenses cannot be negative")
	}
	if profile.EmergencyFund.IsNegative() {
		return fmt.Errorf("emergency fund cannot be negative")
	}

	for i, loan := range profile.Loans {
		if err := ip.validateLoan(&loan); err != nil {
			return fmt.Errorf("loan %d (%s) validation failed: %w", i, loan.Type, err)
		}
	}

	seen := make(map[string]bool, len(profile.Goals))
	for i, goal := range profile.Goals {
		if err := ip.ValidateGoal(&goal); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, goal.Name, err)
		}
		key := strings.ToLower(strings.TrimSpace(goal.Name))
		if seen[key] {
			return fmt.Errorf("duplicate goal name %q", goal.Name)
		}
		seen[key] = true
	}

	return nil
}

func (ip *InputParser) validateLoan(loan *domain.Loan) error {
	if strings.TrimSpace(loan.Type) == "" {
		return fmt.Errorf("loan type is required")
	}
	if loan.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if loan.TenureMonths < 0 {
		return fmt.Errorf("tenure months cannot be negative")
	}
	if loan.Installment.IsNegative() {
		return fmt.Errorf("installment cannot be negative")
	}
	if loan.InterestRate.IsNegative() {
		return fmt.Errorf("interest rate cannot be negative")
	}
	return nil
}

// ValidateGoal checks a single goal's required fields and ranges
func (ip *InputParser) ValidateGoal(goal *domain.Goal) error {
	if strings.TrimSpace(goal.Name) == "" {
		return fmt.Errorf("goal name is required")
	}
	if goal.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("target amount must be positive")
	}
	if goal.MonthsToAchieve <= 0 {
		return fmt.Errorf("months to achieve must be positive")
	}
	if goal.CurrentSavings.IsNegative() {
		return fmt.Errorf("current savings cannot be negative")
	}
	if goal.SIP.IsNegative() {
		return fmt.Errorf("sip cannot be negative")
	}
	return nil
}

// validateAssumptions requires bounded tiers in ascending order with at most one
// open-ended tier, placed last
func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	prev := 0
	for i, tier := range a.ReturnTiers {
		if tier.AnnualRate.IsNegative() {
			return fmt.Errorf("return tier %d: annual rate cannot be negative", i)
		}
		if tier.AnnualRate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("return tier %d: annual rate must be a fraction, got %s", i, tier.AnnualRate)
		}
		if tier.MaxMonths < 0 {
			return fmt.Errorf("return tier %d: max months cannot be negative", i)
		}
		if tier.MaxMonths == 0 {
			if i != len(a.ReturnTiers)-1 {
				return fmt.Errorf("return tier %d: open-ended tier must be last", i)
			}
			continue
		}
		if tier.MaxMonths <= prev {
			return fmt.Errorf("return tier %d: max months must be ascending", i)
		}
		prev = tier.MaxMonths
	}
	if a.MaxExtensionMonths < 0 {
		return fmt.Errorf("max extension months cannot be negative")
	}
	if a.EmergencyFundMonths < 0 {
		return fmt.Errorf("emergency fund months cannot be negative")
	}
	return nil
}
