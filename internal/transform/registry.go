package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_risk_profile", createSetRiskProfile)
	registry.Register("set_income", createSetIncome)
	registry.Register("add_emergency_fund", createAddEmergencyFund)
	registry.Register("add_insurance", createAddInsurance)
	registry.Register("close_loan", createCloseLoan)
	registry.Register("adjust_sip", createAdjustSIP)
	registry.Register("extend_goal", createExtendGoal)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_sip:goal=Home,amount=2000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	out := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func requireParam(transform, key string, params map[string]string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, key, params)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createSetRiskProfile(params map[string]string) (ProfileTransform, error) {
	profile, err := requireParam("set_risk_profile", "profile", params)
	if err != nil {
		return nil, err
	}
	return &SetRiskProfile{Profile: domain.RiskProfile(profile)}, nil
}

func createSetIncome(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("set_income", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createAddEmergencyFund(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("add_emergency_fund", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AddEmergencyFund{Amount: amount}, nil
}

func createAddInsurance(params map[string]string) (ProfileTransform, error) {
	tag, err := requireParam("add_insurance", "tag", params)
	if err != nil {
		return nil, err
	}
	return &AddInsurance{Tag: tag}, nil
}

func createCloseLoan(params map[string]string) (ProfileTransform, error) {
	loanType, err := requireParam("close_loan", "type", params)
	if err != nil {
		return nil, err
	}
	return &CloseLoan{Type: loanType}, nil
}

func createAdjustSIP(params map[string]string) (ProfileTransform, error) {
	goal, err := requireParam("adjust_sip", "goal", params)
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("adjust_sip", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSIP{Goal: goal, Amount: amount}, nil
}

func createExtendGoal(params map[string]string) (ProfileTransform, error) {
	goal, err := requireParam("extend_goal", "goal", params)
	if err != nil {
		return nil, err
	}
	monthsStr, err := requireParam("extend_goal", "months", params)
	if err != nil {
		return nil, err
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &ExtendGoal{Goal: goal, Months: months}, nil
}
