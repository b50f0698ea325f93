package transform

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Equal(t, []string{
		"add_emergency_fund", "add_insurance", "adjust_sip", "close_loan",
		"extend_goal", "set_income", "set_risk_profile",
	}, registry.List())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
		check    func(t *testing.T, pt ProfileTransform)
	}{
		{"adjust_sip:goal=Home,amount=2000", "adjust_sip", func(t *testing.T, pt ProfileTransform) {
			as := pt.(*AdjustSIP)
			assert.Equal(t, "Home", as.Goal)
			assert.True(t, decimal.NewFromInt(2000).Equal(as.Amount))
		}},
		{"extend_goal: goal = Vacation , months = 6", "extend_goal", func(t *testing.T, pt ProfileTransform) {
			eg := pt.(*ExtendGoal)
			assert.Equal(t, "Vacation", eg.Goal)
			assert.Equal(t, 6, eg.Months)
		}},
		{"set_risk_profile:profile=conservative", "set_risk_profile", func(t *testing.T, pt ProfileTransform) {
			assert.Equal(t, domain.RiskProfile("conservative"), pt.(*SetRiskProfile).Profile)
		}},
		{"set_income:amount=90000.50", "set_income", func(t *testing.T, pt ProfileTransform) {
			assert.Equal(t, "90000.5", pt.(*SetIncome).Amount.String())
		}},
		{"add_emergency_fund:amount=50000", "add_emergency_fund", nil},
		{"add_insurance:tag=life", "add_insurance", nil},
		{"close_loan:type=car", "close_loan", nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			pt, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, pt.Name())
			if tt.check != nil {
				tt.check(t, pt)
			}
		})
	}
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		wantErr string
	}{
		{"adjust_sip", "invalid transform spec format"},
		{"unknown:x=1", "unknown transform"},
		{"adjust_sip:goal", "invalid parameter format"},
		{"adjust_sip:goal=Home", "requires 'amount' parameter"},
		{"adjust_sip:goal=Home,amount=lots", "invalid amount value"},
		{"extend_goal:goal=Home,months=1.5", "invalid months value"},
		{"close_loan:", "requires 'type' parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(tt.spec)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTransformRegistry_ParseTransformSpecs(t *testing.T) {
	registry := NewTransformRegistry()

	transforms, err := registry.ParseTransformSpecs([]string{"add_insurance:tag=life", "close_loan:type=car"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Add life insurance", "Close the car loan"}, Describe(transforms))

	_, err = registry.ParseTransformSpecs([]string{"add_insurance:tag=life", "nope:x=1"})
	assert.Error(t, err)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	base := createTestProfile()
	registry := CreateBuiltInTemplates(base)

	// expenses 50000 + EMI 15000 -> target 390000, fund 100000
	assert.Equal(t, []string{"debt_free", "delay_goals_1yr", "full_emergency_fund", "go_aggressive", "play_safe"}, registry.List())

	tpl, ok := registry.Get("FULL_EMERGENCY_FUND")
	require.True(t, ok)
	result, err := ApplyTemplate(base, tpl)
	require.NoError(t, err)
	assert.Equal(t, "390000", result.EmergencyFund.String())

	tpl, _ = registry.Get("debt_free")
	result, err = ApplyTemplate(base, tpl)
	require.NoError(t, err)
	assert.Empty(t, result.Loans)

	tpl, _ = registry.Get("delay_goals_1yr")
	result, err = ApplyTemplate(base, tpl)
	require.NoError(t, err)
	assert.Equal(t, 72, result.Goals[0].MonthsToAchieve)
	assert.Equal(t, 24, result.Goals[1].MonthsToAchieve)

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates_MinimalProfile(t *testing.T) {
	registry := CreateBuiltInTemplates(&domain.HouseholdProfile{Name: "bare"})
	assert.Equal(t, []string{"go_aggressive", "play_safe"}, registry.List())

	assert.Equal(t, []string{"go_aggressive", "play_safe"}, CreateBuiltInTemplates(nil).List())
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"play_safe", "debt_free"}, ParseTemplateList(" play_safe, ,debt_free "))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))

	help := GetTemplateHelp(CreateBuiltInTemplates(createTestProfile()))
	assert.Contains(t, help, "play_safe")
	assert.Contains(t, help, "Usage:")
}
