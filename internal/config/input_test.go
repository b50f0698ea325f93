package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() domain.HouseholdProfile {
	return domain.HouseholdProfile{
		Name:          "Test User",
		Age:           40,
		Income:        decimal.NewFromInt(100000),
		Expenses:      decimal.NewFromInt(50000),
		EmergencyFund: decimal.NewFromInt(200000),
		RiskProfile:   "balanced",
		Loans: []domain.Loan{
			{Type: "car", Amount: decimal.NewFromInt(500000), TenureMonths: 48, Installment: decimal.NewFromInt(12000), InterestRate: decimal.NewFromFloat(9.2)},
		},
		Goals: []domain.Goal{
			{Name: "Home", TargetAmount: decimal.NewFromInt(2000000), MonthsToAchieve: 84, SIP: decimal.NewFromInt(15000)},
		},
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("../../test/testdata/example_profile.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Meera Iyer", config.Profile.Name)
	assert.Equal(t, domain.RiskProfile("Aggressive"), config.Profile.RiskProfile)
	assert.Equal(t, "INR", config.Currency)
	require.Len(t, config.Profile.Loans, 1)
	assert.Equal(t, "8.5", config.Profile.Loans[0].InterestRate.String())
	require.Len(t, config.Profile.Goals, 2)
	assert.Equal(t, "1000000", config.Profile.Goals[1].TargetAmount.String())
	assert.Nil(t, config.Assumptions)
}

func TestLoadFromFile_JSON(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("../../test/testdata/example_profile.json")
	require.NoError(t, err)

	assert.Equal(t, "Arjun Rao", config.Profile.Name)
	assert.True(t, config.Profile.Income.IsZero())
	require.NotNil(t, config.Assumptions)
	assert.Equal(t, 60, config.EffectiveAssumptions().MaxExtensionMonths)
	assert.Len(t, config.EffectiveAssumptions().ReturnTiers, 3)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile("does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read file")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("profile: [unclosed"), 0o600))
	_, err = parser.LoadFromFile(bad)
	assert.ErrorContains(t, err, "failed to parse YAML")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("profile:\n  name: x\n  income: -1\n"), 0o600))
	_, err = parser.LoadFromFile(invalid)
	assert.ErrorContains(t, err, "income cannot be negative")
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.HouseholdProfile)
		wantErr string
	}{
		{"valid", func(p *domain.HouseholdProfile) {}, ""},
		{"unknown risk profile is accepted", func(p *domain.HouseholdProfile) { p.RiskProfile = "yolo" }, ""},
		{"age beyond 110 is accepted", func(p *domain.HouseholdProfile) { p.Age = 115 }, ""},
		{"missing name", func(p *domain.HouseholdProfile) { p.Name = "  " }, "name is required"},
		{"negative age", func(p *domain.HouseholdProfile) { p.Age = -1 }, "age cannot be negative"},
		{"negative dependents", func(p *domain.HouseholdProfile) { p.Dependents = -2 }, "dependents cannot be negative"},
		{"negative expenses", func(p *domain.HouseholdProfile) { p.Expenses = decimal.NewFromInt(-5) }, "expenses cannot be negative"},
		{"negative emergency fund", func(p *domain.HouseholdProfile) { p.EmergencyFund = decimal.NewFromInt(-5) }, "emergency fund cannot be negative"},
		{"loan without type", func(p *domain.HouseholdProfile) { p.Loans[0].Type = "" }, "loan type is required"},
		{"negative installment", func(p *domain.HouseholdProfile) { p.Loans[0].Installment = decimal.NewFromInt(-1) }, "installment cannot be negative"},
		{"negative interest", func(p *domain.HouseholdProfile) { p.Loans[0].InterestRate = decimal.NewFromInt(-1) }, "interest rate cannot be negative"},
		{"zero target", func(p *domain.HouseholdProfile) { p.Goals[0].TargetAmount = decimal.Zero }, "target amount must be positive"},
		{"zero horizon", func(p *domain.HouseholdProfile) { p.Goals[0].MonthsToAchieve = 0 }, "months to achieve must be positive"},
		{"negative sip", func(p *domain.HouseholdProfile) { p.Goals[0].SIP = decimal.NewFromInt(-1) }, "sip cannot be negative"},
		{"negative savings", func(p *domain.HouseholdProfile) { p.Goals[0].CurrentSavings = decimal.NewFromInt(-1) }, "current savings cannot be negative"},
		{"duplicate goal", func(p *domain.HouseholdProfile) {
			p.Goals = append(p.Goals, domain.Goal{Name: "home", TargetAmount: decimal.NewFromInt(1), MonthsToAchieve: 1})
		}, "duplicate goal name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := NewInputParser().ValidateProfile(&p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateConfiguration_Assumptions(t *testing.T) {
	tests := []struct {
		name        string
		assumptions domain.Assumptions
		wantErr     string
	}{
		{"defaults", domain.DefaultAssumptions(), ""},
		{"bounded tiers only", domain.Assumptions{ReturnTiers: []domain.ReturnTier{{MaxMonths: 12, AnnualRate: decimal.NewFromFloat(0.05)}}}, ""},
		{"negative rate", domain.Assumptions{ReturnTiers: []domain.ReturnTier{{AnnualRate: decimal.NewFromFloat(-0.01)}}}, "cannot be negative"},
		{"percentage instead of fraction", domain.Assumptions{ReturnTiers: []domain.ReturnTier{{AnnualRate: decimal.NewFromInt(8)}}}, "must be a fraction"},
		{"open tier not last", domain.Assumptions{ReturnTiers: []domain.ReturnTier{
			{MaxMonths: 0, AnnualRate: decimal.NewFromFloat(0.1)},
			{MaxMonths: 36, AnnualRate: decimal.NewFromFloat(0.06)},
		}}, "open-ended tier must be last"},
		{"descending tiers", domain.Assumptions{ReturnTiers: []domain.ReturnTier{
			{MaxMonths: 84, AnnualRate: decimal.NewFromFloat(0.08)},
			{MaxMonths: 36, AnnualRate: decimal.NewFromFloat(0.06)},
		}}, "must be ascending"},
		{"negative extension cap", domain.Assumptions{MaxExtensionMonths: -1}, "max extension months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.assumptions
			cfg := &domain.Configuration{Profile: validProfile(), Assumptions: &a}
			err := NewInputParser().ValidateConfiguration(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateConfiguration_Currency(t *testing.T) {
	cfg := &domain.Configuration{Profile: validProfile(), Currency: "usd"}
	assert.NoError(t, NewInputParser().ValidateConfiguration(cfg))

	cfg.Currency = "XXQ"
	assert.ErrorContains(t, NewInputParser().ValidateConfiguration(cfg), "unknown currency code")
}
