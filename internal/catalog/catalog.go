// Package catalog maps a recommended allocation onto concrete instruments.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AssetClass is one leg of an AllocationResult
type AssetClass string

const (
	Equity      AssetClass = "equity"
	Bonds       AssetClass = "bonds"
	Commodities AssetClass = "commodities"
)

// Term is an investment horizon bucket
type Term string

const (
	ShortTerm Term = "short"
	MidTerm   Term = "mid"
	LongTerm  Term = "long"
)

// TermForMonths buckets a goal horizon: up to 24 months is short, up to 60 is mid
func TermForMonths(months int) Term {
	switch {
	case months <= 24:
		return ShortTerm
	case months <= 60:
		return MidTerm
	default:
		return LongTerm
	}
}

// ParseTerm accepts short, mid or long in any case
func ParseTerm(s string) (Term, error) {
	switch t := Term(strings.ToLower(strings.TrimSpace(s))); t {
	case ShortTerm, MidTerm, LongTerm:
		return t, nil
	}
	return "", fmt.Errorf("unknown term %q (want short, mid or long)", s)
}

// Instrument is one investable product
type Instrument struct {
	Name         string                     `yaml:"name" json:"name"`
	Category     string                     `yaml:"category" json:"category"`
	SubCategory  string                     `yaml:"sub_category" json:"sub_category"`
	AssetClass   AssetClass                 `yaml:"asset_class" json:"asset_class"`
	Terms        []Term                     `yaml:"terms" json:"terms"`
	RiskLevel    string                     `yaml:"risk_level" json:"risk_level"`
	Benchmark    string                     `yaml:"benchmark" json:"benchmark"`
	FundHouse    string                     `yaml:"fund_house" json:"fund_house"`
	ISIN         string                     `yaml:"isin,omitempty" json:"isin,omitempty"`
	ExpenseRatio decimal.Decimal            `yaml:"expense_ratio" json:"expense_ratio"`
	InterestRate *decimal.Decimal           `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	MaturityDate string                     `yaml:"maturity_date,omitempty" json:"maturity_date,omitempty"`
	Returns      map[string]decimal.Decimal `yaml:"returns" json:"returns"` // Annualized percentages keyed by period
	ExitLoad     string                     `yaml:"exit_load" json:"exit_load"`
}

// Suits reports whether the instrument is listed for the term
func (i Instrument) Suits(term Term) bool {
	for _, t := range i.Terms {
		if t == term {
			return true
		}
	}
	return false
}

// Catalog is an immutable instrument list
type Catalog struct {
	instruments []Instrument
}

//go:embed instruments.yaml
var builtinSource []byte

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Instruments []Instrument `yaml:"instruments"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i, inst := range doc.Instruments {
		if inst.Name == "" {
			return nil, fmt.Errorf("instrument %d: name is required", i)
		}
		switch inst.AssetClass {
		case Equity, Bonds, Commodities:
		default:
			return nil, fmt.Errorf("instrument %s: unknown asset class %q", inst.Name, inst.AssetClass)
		}
	}
	return &Catalog{instruments: doc.Instruments}, nil
}

// Builtin returns the embedded catalog
func Builtin() *Catalog {
	c, err := Parse(builtinSource)
	if err != nil {
		panic(err)
	}
	return c
}

// Instruments returns a copy of every instrument in catalog order
func (c *Catalog) Instruments() []Instrument {
	return append([]Instrument(nil), c.instruments...)
}

// Lookup finds an instrument by case-insensitive name. When no name matches
// exactly, a prefix shared by exactly one instrument is accepted.
func (c *Catalog) Lookup(name string) (Instrument, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Instrument{}, false
	}
	var prefixed []Instrument
	for _, inst := range c.instruments {
		if strings.EqualFold(inst.Name, name) {
			return inst, true
		}
		if strings.HasPrefix(strings.ToLower(inst.Name), strings.ToLower(name)) {
			prefixed = append(prefixed, inst)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return Instrument{}, false
}

// Candidate lists the instruments proposed for one asset class
type Candidate struct {
	AssetClass  AssetClass      `json:"asset_class"`
	Weight      decimal.Decimal `json:"weight"` // Percentage points
	Instruments []Instrument    `json:"instruments"`
}

// Candidates proposes instruments for every asset class with a positive weight,
// in equity, bonds, commodities order. Instruments suited to the term come first;
// the rest of the class follows as fallbacks.
func (c *Catalog) Candidates(alloc domain.AllocationResult, term Term) []Candidate {
	legs := []struct {
		class  AssetClass
		weight decimal.Decimal
	}{
		{Equity, alloc.Equity},
		{Bonds, alloc.Bonds},
		{Commodities, alloc.Commodities},
	}

	out := []Candidate{}
	for _, leg := range legs {
		if !leg.weight.IsPositive() {
			continue
		}
		var matched []Instrument
		for _, inst := range c.instruments {
			if inst.AssetClass == leg.class {
				matched = append(matched, inst)
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Suits(term) && !matched[j].Suits(term)
		})
		out = append(out, Candidate{AssetClass: leg.class, Weight: leg.weight, Instruments: matched})
	}
	return out
}
