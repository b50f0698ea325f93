package domain

import (
	"github.com/shopspring/decimal"
)

// ReturnTier maps goal horizons up to MaxMonths (inclusive) to an annual nominal return.
// A MaxMonths of 0 marks the open-ended last tier.
type ReturnTier struct {
	MaxMonths  int             `yaml:"max_months" json:"max_months"`
	AnnualRate decimal.Decimal `yaml:"annual_rate" json:"annual_rate"` // Fraction, e.g. 0.08
}

// Assumptions holds the tunable constants of the planning engine
type Assumptions struct {
	ReturnTiers         []ReturnTier `yaml:"return_tiers" json:"return_tiers"`
	MaxExtensionMonths  int          `yaml:"max_extension_months" json:"max_extension_months"`
	EmergencyFundMonths int          `yaml:"emergency_fund_months" json:"emergency_fund_months"`
}

// DefaultMaxExtensionMonths caps the extra-time search for infeasible goals
const DefaultMaxExtensionMonths = 120

// DefaultEmergencyFundMonths is the number of months of outflow an emergency fund should cover
const DefaultEmergencyFundMonths = 6

// DefaultAssumptions returns the standard tiers: <=36 months 6%, <=84 months 8%, beyond 10%
func DefaultAssumptions() Assumptions {
	return Assumptions{
		ReturnTiers: []ReturnTier{
			{MaxMonths: 36, AnnualRate: decimal.NewFromFloat(0.06)},
			{MaxMonths: 84, AnnualRate: decimal.NewFromFloat(0.08)},
			{MaxMonths: 0, AnnualRate: decimal.NewFromFloat(0.10)},
		},
		MaxExtensionMonths:  DefaultMaxExtensionMonths,
		EmergencyFundMonths: DefaultEmergencyFundMonths,
	}
}

// WithDefaults fills zero-valued fields from DefaultAssumptions
func (a Assumptions) WithDefaults() Assumptions {
	def := DefaultAssumptions()
	if len(a.ReturnTiers) == 0 {
		a.ReturnTiers = def.ReturnTiers
	}
	if a.MaxExtensionMonths <= 0 {
		a.MaxExtensionMonths = def.MaxExtensionMonths
	}
	if a.EmergencyFundMonths <= 0 {
		a.EmergencyFundMonths = def.EmergencyFundMonths
	}
	return a
}

// AnnualRateFor returns the annual rate of the first tier covering the horizon.
// Horizons beyond every bounded tier fall into the last tier.
func (a Assumptions) AnnualRateFor(months int) decimal.Decimal {
	tiers := a.ReturnTiers
	if len(tiers) == 0 {
		tiers = DefaultAssumptions().ReturnTiers
	}
	for _, tier := range tiers {
		if tier.MaxMonths == 0 || months <= tier.MaxMonths {
			return tier.AnnualRate
		}
	}
	return tiers[len(tiers)-1].AnnualRate
}

// Configuration is the on-disk input: a profile plus optional engine assumptions
type Configuration struct {
	Profile     HouseholdProfile `yaml:"profile" json:"profile"`
	Assumptions *Assumptions     `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
	Currency    string           `yaml:"currency,omitempty" json:"currency,omitempty"` // ISO code for display only
}

// EffectiveAssumptions returns the configured assumptions merged over the defaults
func (c *Configuration) EffectiveAssumptions() Assumptions {
	if c.Assumptions == nil {
		return DefaultAssumptions()
	}
	return c.Assumptions.WithDefaults()
}
