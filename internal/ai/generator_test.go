package ai

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
)

type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const proposalJSON = `{
  "executiveSummary": {"title": "Grow with TaxDome", "body": "Body.", "keyBenefits": ["A", "B"]},
  "quote": {
    "planName": "TaxDome Pro",
    "pricePerUser": "$800",
    "billingFrequency": "billed annually",
    "softwareTotal": "$4,000",
    "onboarding": {"name": "Guided", "price": "$999", "features": ["x"]},
    "totalAnnualCost": "$4,999",
    "featuresList": ["Client Portal"],
    "closingStatement": "Let's go."
  }
}`

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```JSON {\"a\":1}```":    `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFences(in), "input %q", in)
	}
}

func TestParseProposalContent_FencedAndBareAreEqual(t *testing.T) {
	bare, err := ParseProposalContent(proposalJSON)
	require.NoError(t, err)

	fenced, err := ParseProposalContent("```json\n" + proposalJSON + "\n```")
	require.NoError(t, err)

	assert.Equal(t, bare, fenced)
	assert.Equal(t, "TaxDome Pro", bare.Quote.PlanName)
	assert.Equal(t, []string{"A", "B"}, bare.ExecutiveSummary.KeyBenefits)
}

func TestParseProposalContent_Invalid(t *testing.T) {
	for _, in := range []string{"", "```json\n```", "Sure! Here is your proposal", `{"executiveSummary": `} {
		_, err := ParseProposalContent(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestProposalGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	text := new(mockTextGenerator)
	text.On("GenerateText", ctx, SystemInstruction, "prompt").Return("```json\n"+proposalJSON+"\n```", nil).Once()

	gen := NewProposalGenerator(text, quietLogger())
	content, err := gen.Generate(ctx, "prompt")

	require.NoError(t, err)
	assert.Equal(t, "$4,999", content.Quote.TotalAnnualCost)
	text.AssertExpectations(t)
}

func TestProposalGenerator_GenerateFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		out  string
		err  error
	}{
		{name: "transport error", err: errors.New("connection refused")},
		{name: "empty response", out: "   "},
		{name: "not json", out: "I cannot help with that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := new(mockTextGenerator)
			text.On("GenerateText", ctx, SystemInstruction, "prompt").Return(tt.out, tt.err).Once()

			content, err := NewProposalGenerator(text, quietLogger()).Generate(ctx, "prompt")

			assert.Nil(t, content)
			assert.ErrorIs(t, err, apperror.ErrGenerationFailed)
			assert.True(t, apperror.IsGenerationFailed(err))
			text.AssertNumberOfCalls(t, "GenerateText", 1)
		})
	}
}
