package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// steadyProfile has a funded emergency reserve and a neutral 25% surplus ratio,
// so only the rule under test moves the allocation.
func steadyProfile(risk domain.RiskProfile, age int) *domain.HouseholdProfile {
	return &domain.HouseholdProfile{
		Name:          "steady",
		Age:           age,
		Income:        decimal.NewFromInt(10000),
		Expenses:      decimal.NewFromInt(7500),
		EmergencyFund: decimal.NewFromInt(45000),
		RiskProfile:   risk,
	}
}

func allocateProfile(p *domain.HouseholdProfile) domain.AllocationResult {
	return Allocate(p, Summarize(p))
}

func assertAllocation(t *testing.T, want, got domain.AllocationResult) {
	t.Helper()
	assert.True(t, want.Equal(got), "want equity=%s bonds=%s commodities=%s, got equity=%s bonds=%s commodities=%s",
		want.Equity, want.Bonds, want.Commodities, got.Equity, got.Bonds, got.Commodities)
}

func TestBaseAllocation(t *testing.T) {
	tests := []struct {
		risk domain.RiskProfile
		want domain.AllocationResult
	}{
		{"conservative", domain.NewAllocation(30, 60, 10)},
		{"balanced", domain.NewAllocation(50, 40, 10)},
		{"aggressive", domain.NewAllocation(70, 20, 10)},
		{"Aggressive", domain.NewAllocation(70, 20, 10)},
		{"", domain.NewAllocation(50, 40, 10)},
		{"speculative", domain.NewAllocation(50, 40, 10)},
	}

	for _, tt := range tests {
		t.Run(string(tt.risk), func(t *testing.T) {
			assertAllocation(t, tt.want, BaseAllocation(tt.risk))
		})
	}
}

func TestAllocate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		profile func() *domain.HouseholdProfile
		want    domain.AllocationResult
	}{
		{
			name:    "steady profile keeps the base split",
			profile: func() *domain.HouseholdProfile { return steadyProfile("balanced", 30) },
			want:    domain.NewAllocation(50, 40, 10),
		},
		{
			name: "zero income skips the surplus rule",
			profile: func() *domain.HouseholdProfile {
				return &domain.HouseholdProfile{Age: 25, RiskProfile: "aggressive"}
			},
			want: domain.NewAllocation(70, 20, 10),
		},
		{
			name:    "age ceiling shifts excess equity into bonds",
			profile: func() *domain.HouseholdProfile { return steadyProfile("aggressive", 60) },
			want:    domain.NewAllocation(50, 40, 10),
		},
		{
			name:    "age 110 leaves no room for equity",
			profile: func() *domain.HouseholdProfile { return steadyProfile("aggressive", 110) },
			want:    domain.NewAllocation(0, 90, 10),
		},
		{
			name:    "ceiling clamps at zero beyond 110",
			profile: func() *domain.HouseholdProfile { return steadyProfile("aggressive", 111) },
			want:    domain.NewAllocation(0, 90, 10),
		},
		{
			name: "empty emergency fund cuts twenty points",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.EmergencyFund = decimal.Zero
				return p
			},
			want: domain.NewAllocation(30, 60, 10),
		},
		{
			name: "quarter deficit cuts five points",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.EmergencyFund = decimal.NewFromInt(33750)
				return p
			},
			want: domain.NewAllocation(45, 45, 10),
		},
		{
			name: "half-point cut rounds to even",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.EmergencyFund = decimal.NewFromInt(39375)
				return p
			},
			want: domain.NewAllocation(48, 42, 10),
		},
		{
			name: "deficit respects the equity floor",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("conservative", 30)
				p.EmergencyFund = decimal.Zero
				return p
			},
			want: domain.NewAllocation(10, 80, 10),
		},
		{
			name: "low surplus ratio moves ten points to bonds",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.Expenses = decimal.NewFromInt(9500)
				p.EmergencyFund = decimal.NewFromInt(57000)
				return p
			},
			want: domain.NewAllocation(40, 50, 10),
		},
		{
			name: "high surplus ratio moves ten points to equity",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.Expenses = decimal.NewFromInt(5000)
				return p
			},
			want: domain.NewAllocation(60, 30, 10),
		},
		{
			name: "aggressive profile with high surplus ratio",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("aggressive", 30)
				p.Expenses = decimal.NewFromInt(1000)
				return p
			},
			want: domain.NewAllocation(80, 10, 10),
		},
		{
			name: "more short than long goals skews to bonds",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.Goals = []domain.Goal{{Name: "car", MonthsToAchieve: 12}, {Name: "trip", MonthsToAchieve: 24}, {Name: "retirement", MonthsToAchieve: 60}}
				return p
			},
			want: domain.NewAllocation(40, 50, 10),
		},
		{
			name: "balanced horizons leave the split alone",
			profile: func() *domain.HouseholdProfile {
				p := steadyProfile("balanced", 30)
				p.Goals = []domain.Goal{{Name: "car", MonthsToAchieve: 24}, {Name: "college", MonthsToAchieve: 36}, {Name: "retirement", MonthsToAchieve: 240}}
				return p
			},
			want: domain.NewAllocation(50, 40, 10),
		},
		{
			name: "clamped steps push commodities negative",
			profile: func() *domain.HouseholdProfile {
				return &domain.HouseholdProfile{
					Age:         100,
					Income:      decimal.NewFromInt(10000),
					Expenses:    decimal.NewFromInt(9500),
					RiskProfile: "aggressive",
				}
			},
			want: domain.NewAllocation(10, 100, -10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocateProfile(tt.profile())
			assertAllocation(t, tt.want, got)
			assert.True(t, decimal.NewFromInt(100).Equal(got.Sum()), "allocation must sum to 100")
		})
	}
}

func TestAllocate_AlwaysSumsTo100(t *testing.T) {
	risks := []domain.RiskProfile{"conservative", "balanced", "aggressive", "unknown"}
	ages := []int{0, 18, 45, 70, 100, 110, 130}
	funds := []int64{0, 7000, 20000, 1000000}
	expenses := []int64{0, 1500, 4000, 9900, 15000}

	for _, risk := range risks {
		for _, age := range ages {
			for _, fund := range funds {
				for _, exp := range expenses {
					p := &domain.HouseholdProfile{
						Age:           age,
						Income:        decimal.NewFromInt(10000),
						Expenses:      decimal.NewFromInt(exp),
						EmergencyFund: decimal.NewFromInt(fund),
						RiskProfile:   risk,
						Goals:         []domain.Goal{{Name: "soon", MonthsToAchieve: 6}},
					}
					got := allocateProfile(p)
					assert.True(t, decimal.NewFromInt(100).Equal(got.Sum()),
						fmt.Sprintf("risk=%s age=%d fund=%d expenses=%d sum=%s", risk, age, fund, exp, got.Sum()))
				}
			}
		}
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	p := steadyProfile("aggressive", 72)
	p.EmergencyFund = decimal.NewFromInt(10000)
	assertAllocation(t, allocateProfile(p), allocateProfile(p))
}

func TestAllocationRules_Order(t *testing.T) {
	var names []string
	for _, r := range AllocationRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"age_ceiling", "emergency_fund_deficit", "surplus_ratio", "goal_horizon_skew", "normalize"}, names)
}

func TestPlanningEngine_AllocateTrace(t *testing.T) {
	engine := NewPlanningEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	p := steadyProfile("aggressive", 40)
	engine.Allocate(p, engine.Summarize(p))

	assert.Contains(t, logger.messages, "DEBUG: allocation base (aggressive): equity=70 bonds=20 commodities=10")
	assert.Contains(t, logger.messages, "DEBUG: allocation after normalize: equity=70 bonds=20 commodities=10")
	assert.Equal(t, 1+len(AllocationRules()), logger.count("DEBUG: allocation"))
}

func TestEquityCeilingForAge(t *testing.T) {
	assert.Equal(t, "85", EquityCeilingForAge(25).String())
	assert.Equal(t, "0", EquityCeilingForAge(110).String())
	assert.Equal(t, "0", EquityCeilingForAge(150).String())
}

func TestEmergencyDeficitRatio(t *testing.T) {
	cf := domain.CashFlowSummary{IdealEmergencyFund: decimal.NewFromInt(30000)}

	assert.Equal(t, "1", EmergencyDeficitRatio(decimal.Zero, cf).String())
	assert.Equal(t, "0.5", EmergencyDeficitRatio(decimal.NewFromInt(15000), cf).String())
	assert.True(t, EmergencyDeficitRatio(decimal.NewFromInt(50000), cf).IsZero(), "surplus fund is not a negative deficit")
	assert.True(t, EmergencyDeficitRatio(decimal.Zero, domain.CashFlowSummary{}).IsZero(), "zero ideal fund")
}

func TestSurplusRatio(t *testing.T) {
	ratio, ok := SurplusRatio(decimal.NewFromInt(10000), domain.CashFlowSummary{MonthlySurplus: decimal.NewFromInt(2500)})
	assert.True(t, ok)
	assert.Equal(t, "0.25", ratio.String())

	_, ok = SurplusRatio(decimal.Zero, domain.CashFlowSummary{MonthlySurplus: decimal.NewFromInt(-500)})
	assert.False(t, ok)
}

func TestGoalHorizonCounts(t *testing.T) {
	short, long := GoalHorizonCounts([]domain.Goal{
		{MonthsToAchieve: 24}, {MonthsToAchieve: 25}, {MonthsToAchieve: 59}, {MonthsToAchieve: 60}, {MonthsToAchieve: 3},
	})
	assert.Equal(t, 2, short)
	assert.Equal(t, 1, long)
}
