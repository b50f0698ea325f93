package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates builds the common what-if templates for a profile.
// Templates that would be empty for this profile (no loans, no goals, fund
// already sufficient) are not registered.
func CreateBuiltInTemplates(profile *domain.HouseholdProfile) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "play_safe",
		Description: "Switch to a conservative risk profile",
		Transforms:  []ProfileTransform{&SetRiskProfile{Profile: domain.RiskConservative}},
	})
	registry.Register(Template{
		Name:        "go_aggressive",
		Description: "Switch to an aggressive risk profile",
		Transforms:  []ProfileTransform{&SetRiskProfile{Profile: domain.RiskAggressive}},
	})

	if profile == nil {
		return registry
	}

	cf := calculation.Summarize(profile)
	if shortfall := cf.IdealEmergencyFund.Sub(profile.EmergencyFund); shortfall.IsPositive() {
		registry.Register(Template{
			Name:        "full_emergency_fund",
			Description: fmt.Sprintf("Top the emergency fund up to %s", cf.IdealEmergencyFund.StringFixed(2)),
			Transforms:  []ProfileTransform{&AddEmergencyFund{Amount: shortfall}},
		})
	}

	if len(profile.Goals) > 0 {
		delay := make([]ProfileTransform, 0, len(profile.Goals))
		for _, g := range profile.Goals {
			delay = append(delay, &ExtendGoal{Goal: g.Name, Months: 12})
		}
		registry.Register(Template{
			Name:        "delay_goals_1yr",
			Description: "Push every goal out by 12 months",
			Transforms:  delay,
		})
	}

	if len(profile.Loans) > 0 {
		closeAll := make([]ProfileTransform, 0, len(profile.Loans))
		seen := map[string]bool{}
		for _, l := range profile.Loans {
			key := strings.ToLower(l.Type)
			if seen[key] {
				continue
			}
			seen[key] = true
			closeAll = append(closeAll, &CloseLoan{Type: l.Type})
		}
		registry.Register(Template{
			Name:        "debt_free",
			Description: "Close every outstanding loan",
			Transforms:  closeAll,
		})
	}

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.HouseholdProfile, template Template) (*domain.HouseholdProfile, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  finplan compare profile.yaml --with play_safe,full_emergency_fund\n")
	sb.WriteString("  finplan compare profile.yaml --transform adjust_sip:goal=Home,amount=2000\n")

	return sb.String()
}
