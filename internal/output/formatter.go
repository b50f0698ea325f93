package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// Formatter renders a plan summary into a byte payload
type Formatter interface {
	Name() string
	Format(summary *domain.PlanSummary) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(summary *domain.PlanSummary) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(summary *domain.PlanSummary) ([]byte, error) {
	return f.F(summary)
}

var formatAliases = map[string]string{
	"text": "console",
	"md":   "markdown",
	"yml":  "yaml",
	"htm":  "html",
}

func newFormatters(currency string) map[string]Formatter {
	return map[string]Formatter{
		"console":  ConsoleFormatter{Currency: currency},
		"json":     JSONFormatter{Pretty: true},
		"csv":      CSVFormatter{},
		"yaml":     YAMLFormatter{},
		"markdown": MarkdownFormatter{Currency: currency, Style: "notty"},
		"html":     HTMLFormatter{Currency: currency},
	}
}

// AvailableFormatterNames lists the canonical formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, 6)
	for name := range newFormatters(DefaultCurrency) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted short names in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// GetFormatterByName resolves a formatter or alias; it returns nil for unknown names
func GetFormatterByName(name, currency string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[key]; ok {
		key = canonical
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return newFormatters(currency)[key]
}

// WriteFormatted renders the summary and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, summary *domain.PlanSummary, ext string) (string, error) {
	data, err := f.Format(summary)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("finplan_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
