package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const familyJSON = `{
  "name": "Meera Iyer",
  "age": 38,
  "income": 150000,
  "expenses": 60000,
  "dependents": 2,
  "emergency_fund": 300000,
  "insurances": ["health", "life"],
  "risk_profile": "Aggressive",
  "loans": [{"type": "home", "amount": 4000000, "tenure_months": 240, "installment": 35000, "interest_rate": 8.5}],
  "goals": [
    {"name": "Car upgrade", "target_amount": 120000, "months_to_achieve": 36, "current_savings": 0, "sip": 3000, "priority": 1},
    {"name": "Retirement", "target_amount": 1000000, "months_to_achieve": 120, "current_savings": 50000, "sip": 3000, "priority": 2}
  ]
}`

func newTestServer(t *testing.T) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(nil, logger, NewMetrics(false)), hook
}

func do(t *testing.T, s *Server, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestPlan(t *testing.T) {
	s, hook := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/plan", familyJSON, RequestIDHeader, "req-123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	body := decodeBody(t, rec)
	assert.Equal(t, "Meera Iyer", body["name"])
	assert.Equal(t, "aggressive", body["risk_profile"])
	cf := body["cash_flow"].(map[string]interface{})
	assert.Equal(t, "55000", cf["monthly_surplus"])
	assert.Equal(t, "570000", cf["ideal_emergency_fund"])
	alloc := body["recommended_allocation"].(map[string]interface{})
	assert.Equal(t, "71", alloc["equity"])
	assert.Equal(t, "19", alloc["bonds"])
	assert.Equal(t, "10", alloc["commodities"])
	assert.Len(t, body["goal_analysis"], 2)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request handled", entry.Message)
	assert.Equal(t, "req-123", entry.Data["request_id"])
	assert.Equal(t, "/api/v1/plan", entry.Data["route"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestProjectGoal(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/goals/project",
		`{"name": "Car upgrade", "target_amount": 120000, "months_to_achieve": 36, "sip": 3000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "118598.36", body["projected_value"])
	assert.Equal(t, "6", body["expected_return_annual"])
	assert.Equal(t, false, body["feasible"])
	recommendation := body["recommendation"].(map[string]interface{})
	assert.Equal(t, "3035.46", recommendation["suggested_contribution"])
	assert.Equal(t, float64(1), recommendation["extend_by_months"])
}

func TestAllocation(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/allocation", familyJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "71", body["recommended_allocation"].(map[string]interface{})["equity"])
	assert.Equal(t, "35000", body["cash_flow"].(map[string]interface{})["total_emi"])
}

func TestSuggest(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/goals/suggest", familyJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	suggestions := decodeBody(t, rec)["suggested_goals"].([]interface{})
	titles := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		titles = append(titles, s.(map[string]interface{})["title"].(string))
	}
	assert.Equal(t, []string{
		"Start/Increase Emergency Fund",
		"Consider Homeowners or Renters Insurance",
		"Get Disability Insurance",
		"Start Wealth-Building SIP",
	}, titles)
}

func TestBadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		errMsg string
	}{
		{"malformed json", "/api/v1/plan", `{"name":`, http.StatusBadRequest, "invalid request body"},
		{"unknown field", "/api/v1/plan", `{"name": "x", "salary": 5}`, http.StatusBadRequest, "unknown field"},
		{"trailing data", "/api/v1/allocation", `{"name": "x"} {}`, http.StatusBadRequest, "trailing data"},
		{"missing name", "/api/v1/goals/suggest", `{"age": 30}`, http.StatusUnprocessableEntity, "name is required"},
		{"negative income", "/api/v1/plan", `{"name": "x", "income": -1}`, http.StatusUnprocessableEntity, "income cannot be negative"},
		{"invalid goal", "/api/v1/goals/project", `{"name": "Car", "target_amount": 0, "months_to_achieve": 12}`, http.StatusUnprocessableEntity, "target amount must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body, RequestIDHeader, "bad-1")
			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, body["error"], tt.errMsg)
			assert.Equal(t, "bad-1", body["request_id"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/plan", "/api/v1/goals/project", "/api/v1/goals/suggest", "/api/v1/allocation"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}

	rec := do(t, s, http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/unknown", "{}")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/v1/plan", familyJSON)
	do(t, s, http.MethodPost, "/api/v1/goals/project", `{"name": "Car", "target_amount": 100, "months_to_achieve": 12, "sip": 100}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()

	assert.Contains(t, text, `finplan_http_requests_total{code="200",method="POST",route="/api/v1/plan"} 1`)
	assert.Contains(t, text, `finplan_plans_total{risk_profile="aggressive"} 1`)
	assert.Contains(t, text, `finplan_goals_projected_total{feasible="false"} 2`)
	assert.Contains(t, text, `finplan_goals_projected_total{feasible="true"} 1`)
	assert.Contains(t, text, "finplan_http_request_duration_seconds_bucket")
}

func TestRequestIDGenerated(t *testing.T) {
	s, _ := newTestServer(t)
	first := do(t, s, http.MethodGet, "/healthz", "").Header().Get(RequestIDHeader)
	second := do(t, s, http.MethodGet, "/healthz", "").Header().Get(RequestIDHeader)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewBufferString(familyJSON)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
