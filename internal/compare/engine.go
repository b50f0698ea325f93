package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
)

// CompareEngine orchestrates what-if comparison of a profile
type CompareEngine struct {
	Engine            *calculation.PlanningEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.PlanningEngine) *CompareEngine {
	if engine == nil {
		engine = calculation.NewPlanningEngine()
	}
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // Built-in template names, one variant each
	Transforms []string // Transform specs ("name:k=v"), one variant each
}

// Compare analyzes the base profile and every requested variant
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.HouseholdProfile,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	ce.TemplateRegistry = transform.CreateBuiltInTemplates(base)

	baseSummary, err := ce.Engine.Analyze(base)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze base profile: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base, baseSummary)
	baseResult.Description = "Profile as supplied"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		alt, err := ce.analyzeVariant(base.Name+"_"+template.Name, template.Description, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pt, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.ProfileTransform{pt})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %q: %w", spec, err)
		}

		alt, err := ce.analyzeVariant(base.Name+"_"+pt.Name(), pt.Description(), modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseName:           base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) analyzeVariant(name, description string, profile *domain.HouseholdProfile, base ComparisonResult) (ComparisonResult, error) {
	summary, err := ce.Engine.Analyze(profile)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to analyze variant %s: %w", name, err)
	}
	result := ce.MetricsCalculator.CalculateMetrics(name, profile, summary)
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}
