package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the plan summary as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// YAMLFormatter emits the plan summary as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFormatter emits one row per goal projection
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("plan summary is required")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"Goal", "Target", "HorizonMonths", "ExpectedReturnPct", "ProjectedValue",
		"Feasible", "SuggestedContribution", "ExtendByMonths",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range summary.Goals {
		suggested, extend := "", ""
		if rec := g.Recommendation; rec != nil {
			suggested = rec.SuggestedContribution.StringFixed(2)
			if rec.ExtendByMonths != nil {
				extend = strconv.Itoa(*rec.ExtendByMonths)
			}
		}
		row := []string{
			g.Name,
			g.Target.StringFixed(2),
			strconv.Itoa(g.HorizonMonths),
			g.ExpectedReturnAnnual.StringFixed(2),
			g.ProjectedValue.StringFixed(2),
			strconv.FormatBool(g.Feasible),
			suggested,
			extend,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
