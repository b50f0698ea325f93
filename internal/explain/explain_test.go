package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/catalog"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testSummary(t *testing.T) *domain.PlanSummary {
	t.Helper()
	profile := &domain.HouseholdProfile{
		Name:          "Meera Iyer",
		Age:           38,
		Income:        decimal.NewFromInt(150000),
		Expenses:      decimal.NewFromInt(60000),
		Dependents:    2,
		EmergencyFund: decimal.NewFromInt(300000),
		Insurances:    []string{"health", "life"},
		RiskProfile:   domain.RiskAggressive,
		Loans:         []domain.Loan{{Type: "home", Installment: decimal.NewFromInt(35000)}},
		Goals: []domain.Goal{
			{Name: "Car upgrade", TargetAmount: decimal.NewFromInt(120000), MonthsToAchieve: 36, SIP: decimal.NewFromInt(3000)},
			{Name: "Retirement", TargetAmount: decimal.NewFromInt(1000000), MonthsToAchieve: 120, CurrentSavings: decimal.NewFromInt(50000), SIP: decimal.NewFromInt(3000)},
		},
	}
	summary, err := calculation.NewPlanningEngine().Analyze(profile)
	require.NoError(t, err)
	return summary
}

type fakeGenerator struct {
	prompt string
	config *genai.GenerateContentConfig
	model  string
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}}},
	}
}

type staticExplainer string

func (s staticExplainer) Explain(context.Context, Request) (string, error) { return string(s), nil }

func TestProfileDigest(t *testing.T) {
	digest := ProfileDigest(testSummary(t), "USD")
	assert.Equal(t, strings.Join([]string{
		"Name: Meera Iyer",
		"Risk Profile: aggressive",
		"Age Risk Band: medium",
		"Monthly Surplus: $55,000.00",
		"Emergency Fund Adequate: no",
		"",
		"Goals:",
		"- Short Term: None",
		"- Mid Term: Car upgrade",
		"- Long Term: Retirement",
		"",
		"Active Loans: home",
	}, "\n"), digest)
}

func TestBuildPrompt(t *testing.T) {
	summary := testSummary(t)
	prompt := BuildPrompt(Request{Summary: summary, Currency: "USD"})

	assert.True(t, strings.HasPrefix(prompt, "You are a financial advisor"))
	assert.Contains(t, prompt, "=== USER PROFILE ===\nName: Meera Iyer")
	assert.Contains(t, prompt, "- Car upgrade: target $120,000.00 in 36 months at 6.00%, projected $118,598.36, short; needs $3,035.46/month or 1 more months")
	assert.Contains(t, prompt, "=== RECOMMENDED ALLOCATION ===\nEquity: 71%\nBonds: 19%\nCommodities: 10%")
	assert.Contains(t, prompt, "- Start/Increase Emergency Fund")
	assert.NotContains(t, prompt, "=== FUND NAME ===")
	assert.True(t, strings.HasSuffix(prompt, "=== USER QUESTION ===\n"+defaultQuestion))
}

func TestBuildPrompt_WithInstrumentAndQuestion(t *testing.T) {
	inst, ok := catalog.Builtin().Lookup("Nippon India Gold ETF")
	require.True(t, ok)

	prompt := BuildPrompt(Request{Summary: testSummary(t), Question: "  Is gold a good hedge?  ", Instrument: &inst})
	assert.Contains(t, prompt, "=== FUND NAME ===\nNippon India Gold ETF")
	assert.Contains(t, prompt, "returns_1yr: 12.7\nreturns_3yr: 9.6\nreturns_5yr: 11.2\nreturns_since_inception: 10.4")
	assert.Contains(t, prompt, "exit_load: None")
	assert.True(t, strings.HasSuffix(prompt, "=== USER QUESTION ===\nIs gold a good hedge?"))
}

func TestExplain(t *testing.T) {
	_, err := Explain(context.Background(), nil, Request{Summary: testSummary(t)})
	assert.ErrorIs(t, err, ErrNoExplainer)

	_, err = Explain(context.Background(), staticExplainer("x"), Request{})
	assert.Error(t, err)

	text, err := Explain(context.Background(), staticExplainer("commentary"), Request{Summary: testSummary(t)})
	require.NoError(t, err)
	assert.Equal(t, "commentary", text)
}

func TestNewGeminiExplainer_NoKey(t *testing.T) {
	e, err := NewGeminiExplainer(context.Background(), "  ", "gemini-2.5-flash")
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrNoExplainer)
}

func TestGeminiExplainer(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("  Your plan is mostly on track.  ")}
	g := &GeminiExplainer{Model: "gemini-2.5-flash", models: gen}

	text, err := g.Explain(context.Background(), Request{Summary: testSummary(t), Question: "How am I doing?"})
	require.NoError(t, err)
	assert.Equal(t, "Your plan is mostly on track.", text)
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Contains(t, gen.prompt, "=== USER QUESTION ===\nHow am I doing?")
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Equal(t, systemInstruction, gen.config.SystemInstruction.Parts[0].Text)
}

func TestGeminiExplainer_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := &GeminiExplainer{Model: "m", models: &fakeGenerator{err: boom}}
	_, err := g.Explain(context.Background(), Request{Summary: testSummary(t)})
	var ee *ExplainError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "gemini", ee.Provider)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "gemini explainer failed: quota exceeded", err.Error())

	g = &GeminiExplainer{Model: "m", models: &fakeGenerator{resp: textResponse("   ")}}
	_, err = g.Explain(context.Background(), Request{Summary: testSummary(t)})
	assert.ErrorIs(t, err, errEmptyResponse)
}
