package output

import (
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is used when a caller does not name one
const DefaultCurrency = "INR"

// GenerateReport renders the summary with the named formatter and writes it to stdout
func GenerateReport(summary *domain.PlanSummary, format, currency string) error {
	f := GetFormatterByName(format, currency)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(summary)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// SaveConfiguration writes a configuration back out as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats an amount in the currency's minor units using its symbol
// and separators. Unknown codes fall back to "CODE 1234.56".
func FormatCurrency(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return currency + " " + amount.StringFixed(2)
	}
	fraction := int32(cur.Fraction)
	minor := amount.Round(fraction).Shift(fraction)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
