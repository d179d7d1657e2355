package ai

import (
	"strconv"
	"strings"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// NoneProvided подставляется вместо пустой расшифровки или заметок.
const NoneProvided = "None provided."

// Плейсхолдеры шаблона промпта.
const (
	PlaceholderFirmName           = "{{firmName}}"
	PlaceholderContactName        = "{{contactName}}"
	PlaceholderFirmSize           = "{{firmSize}}"
	PlaceholderSelectedPlan       = "{{selectedPlan}}"
	PlaceholderOnboardingName     = "{{onboardingName}}"
	PlaceholderOnboardingPrice    = "{{onboardingPrice}}"
	PlaceholderOnboardingCost     = "{{onboardingCost}}"
	PlaceholderOnboardingFeatures = "{{onboardingFeatures}}"
	PlaceholderFeatures           = "{{features}}"
	PlaceholderLanguage           = "{{language}}"
	PlaceholderTranscript         = "{{transcript}}"
	PlaceholderAdditionalContext  = "{{additionalContext}}"
)

// Placeholders полный список поддерживаемых плейсхолдеров в порядке отображения.
var Placeholders = []string{
	PlaceholderFirmName,
	PlaceholderContactName,
	PlaceholderFirmSize,
	PlaceholderSelectedPlan,
	PlaceholderOnboardingName,
	PlaceholderOnboardingPrice,
	PlaceholderOnboardingCost,
	PlaceholderOnboardingFeatures,
	PlaceholderFeatures,
	PlaceholderLanguage,
	PlaceholderTranscript,
	PlaceholderAdditionalContext,
}

// Hydrate подставляет данные фирмы в шаблон.
// Неизвестные плейсхолдеры остаются как есть. Замена выполняется за один проход,
// поэтому значения, похожие на плейсхолдеры, повторно не раскрываются.
func Hydrate(template string, data models.FirmData) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholderReplacer(data).Replace(template)
}

func placeholderReplacer(data models.FirmData) *strings.Replacer {
	values := map[string]string{
		PlaceholderFirmName:           data.FirmName,
		PlaceholderContactName:        data.ContactName,
		PlaceholderFirmSize:           strconv.Itoa(data.FirmSize),
		PlaceholderSelectedPlan:       string(data.SelectedPlan),
		PlaceholderOnboardingName:     data.SelectedOnboarding.Name,
		PlaceholderOnboardingPrice:    data.SelectedOnboarding.PriceDisplay,
		PlaceholderOnboardingCost:     strconv.FormatFloat(data.SelectedOnboarding.Price, 'f', -1, 64),
		PlaceholderOnboardingFeatures: strings.Join(data.SelectedOnboarding.Features, ", "),
		PlaceholderFeatures:           strings.Join(data.Features, ", "),
		PlaceholderLanguage:           string(data.Language),
		PlaceholderTranscript:         orNoneProvided(data.Transcript),
		PlaceholderAdditionalContext:  orNoneProvided(data.AdditionalContext),
	}

	pairs := make([]string, 0, len(Placeholders)*2)
	for _, p := range Placeholders {
		pairs = append(pairs, p, values[p])
	}
	return strings.NewReplacer(pairs...)
}

// orNoneProvided подставляет NoneProvided только для пустой строки; пробелы сохраняются как есть.
func orNoneProvided(s string) string {
	if s == "" {
		return NoneProvided
	}
	return s
}

// SystemInstruction фиксированная системная инструкция для генератора.
const SystemInstruction = `You are a senior Sales Engineer for TaxDome, a practice management platform for accounting firms.
Write a professional, empathetic and persuasive Executive Summary and Pricing Quote.
Assume standard annual billing unless the context says otherwise.
Return the final answer as a single valid JSON object with no explanations around it.
All generated text must be in the requested output language.`

// DefaultPromptTemplate шаблон, который используется, пока общий промпт не настроен.
const DefaultPromptTemplate = `Please generate a sales proposal for a prospective client.

Client Details:
- Firm Name: {{firmName}}
- Contact Person: {{contactName}}
- Size: {{firmSize}} employees
- Interested in Plan: {{selectedPlan}}
- Selected Onboarding Package: {{onboardingName}} (Price: {{onboardingPrice}})
- Onboarding Features: {{onboardingFeatures}}
- Key Features Desired: {{features}}
- OUTPUT LANGUAGE: {{language}} (the entire response must be in this language)

Additional Context:
- Discovery Call Transcript: "{{transcript}}"
- Executive Notes (Private Context): "{{additionalContext}}"

Task:
1. Use the current published per-user annual price of the "{{selectedPlan}}" plan.
2. Write an Executive Summary in {{language}}.
   - The body is exactly one paragraph of 4 to 5 sentences.
   - Key benefits come from the pains found in the discovery call transcript. If there is no transcript,
     use common industry pains relevant to the selected features.
3. Write a Quote section in {{language}}.
   - Software Cost = {{firmSize}} users * annual price per user.
   - Onboarding Cost = {{onboardingCost}}.
   - Grand Total = Software Cost + Onboarding Cost.

OUTPUT FORMAT:
Return one JSON object with this structure and nothing else:

{
  "executiveSummary": {
    "title": "A short title for the summary",
    "body": "One paragraph, 4-5 sentences, addressing their specific pains.",
    "keyBenefits": ["Benefit 1", "Benefit 2", "Benefit 3"]
  },
  "quote": {
    "planName": "{{selectedPlan}}",
    "pricePerUser": "Price per user per year",
    "billingFrequency": "billed annually",
    "softwareTotal": "Total for the software subscription",
    "onboarding": {
      "name": "{{onboardingName}}",
      "price": "{{onboardingPrice}}",
      "features": ["2-3 key onboarding features"]
    },
    "totalAnnualCost": "Grand total including onboarding, formatted like $12,999",
    "featuresList": ["5-7 key features included in this plan"],
    "closingStatement": "A strong closing sentence with a call to action."
  }
}`
