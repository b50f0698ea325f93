package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty       bool // If true, format with indentation
	IncludePlans bool // If true, embed the full plan summary of every variant
}

type comparisonWithPlans struct {
	*ComparisonSet
	Plans map[string]*domain.PlanSummary `json:"plans"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var payload interface{} = compSet
	if jf.IncludePlans {
		plans := make(map[string]*domain.PlanSummary, len(compSet.AlternativeResults)+1)
		if compSet.BaseResult != nil {
			plans[compSet.BaseResult.VariantName] = compSet.BaseResult.Summary
		}
		for _, alt := range compSet.AlternativeResults {
			plans[alt.VariantName] = alt.Summary
		}
		payload = comparisonWithPlans{ComparisonSet: compSet, Plans: plans}
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
