package output

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Query evaluates a JSONPath expression against the JSON form of a plan summary.
// Decimal amounts appear as strings, exactly as in the json output.
func Query(summary *domain.PlanSummary, path string) (interface{}, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}

// QueryJSON evaluates the expression and marshals the result as indented JSON
func QueryJSON(summary *domain.PlanSummary, path string) ([]byte, error) {
	val, err := Query(summary, path)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(val, "", "  ")
}
