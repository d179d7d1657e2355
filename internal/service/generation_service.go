package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

// ProposalGenerator генерирует содержимое предложения по готовому промпту.
type ProposalGenerator interface {
	Generate(ctx context.Context, prompt string) (*models.ProposalContent, error)
}

// PromptSource отдаёт текущий шаблон промпта.
type PromptSource interface {
	PromptTemplate() PromptState
}

// GenerationResult нормализованные данные фирмы и сгенерированное содержимое.
type GenerationResult struct {
	FirmData models.FirmData        `json:"firmData"`
	Content  models.ProposalContent `json:"content"`
}

// GenerationService проверяет данные мастера и запускает генерацию.
type GenerationService struct {
	generator ProposalGenerator
	prompts   PromptSource
	log       logrus.FieldLogger
}

// NewGenerationService создаёт сервис генерации.
func NewGenerationService(generator ProposalGenerator, prompts PromptSource, log logrus.FieldLogger) *GenerationService {
	return &GenerationService{generator: generator, prompts: prompts, log: log}
}

// Prepare нормализует и проверяет данные фирмы без генерации.
// onboardingID имеет приоритет над переданным пакетом; без обоих берётся пакет по умолчанию.
func (s *GenerationService) Prepare(firm models.FirmData, onboardingID string) (models.FirmData, error) {
	firm.FirmName = strings.TrimSpace(firm.FirmName)
	firm.ContactName = strings.TrimSpace(firm.ContactName)
	if firm.Language == "" {
		firm.Language = models.LanguageEnglish
	}

	if onboardingID == "" {
		onboardingID = firm.SelectedOnboarding.ID
	}
	if onboardingID == "" {
		firm.SelectedOnboarding = models.DefaultOnboardingPackage()
	} else {
		pkg, ok := models.FindOnboardingPackage(onboardingID)
		if !ok {
			return firm, apperror.Validation("unknown onboarding package " + onboardingID)
		}
		firm.SelectedOnboarding = pkg
	}

	if firm.NormalizePlan() {
		s.log.WithField("firm_size", firm.FirmSize).Info("generation: план Essentials заменён на Pro")
	}

	if err := validation.ValidateFirmDetails(firm); err != nil {
		return firm, apperror.Validation(err.Error())
	}
	if err := validation.ValidateFeatureSelection(firm.Features); err != nil {
		return firm, apperror.Validation(err.Error())
	}
	if err := validation.ValidateFreeText(firm.Transcript, firm.AdditionalContext); err != nil {
		return firm, apperror.Validation(err.Error())
	}

	return firm, nil
}

// Generate гидратирует текущий шаблон и вызывает генератор один раз.
func (s *GenerationService) Generate(ctx context.Context, firm models.FirmData, onboardingID string) (*GenerationResult, error) {
	firm, err := s.Prepare(firm, onboardingID)
	if err != nil {
		return nil, err
	}

	prompt := ai.Hydrate(s.prompts.PromptTemplate().Value, firm)
	content, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"firm_name": firm.FirmName,
		"plan":      firm.SelectedPlan,
		"language":  firm.Language,
	}).Info("generation: предложение сгенерировано")

	return &GenerationResult{FirmData: firm, Content: *content}, nil
}
