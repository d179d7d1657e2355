package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
)

// TextGenerator генерирует текст по системной инструкции и пользовательскому промпту.
// Реализации: OpenAI-совместимый Client и GeminiClient.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var errEmptyResponse = errors.New("ai: пустой ответ")

// ProposalGenerator отправляет гидратированный промпт генератору и разбирает ответ.
type ProposalGenerator struct {
	text TextGenerator
	log  logrus.FieldLogger
}

// NewProposalGenerator создаёт адаптер генерации предложений.
func NewProposalGenerator(text TextGenerator, log logrus.FieldLogger) *ProposalGenerator {
	return &ProposalGenerator{text: text, log: log}
}

// Generate вызывает генератор один раз. Любая ошибка сети, пустой ответ или
// невалидный JSON превращаются в apperror.ErrGenerationFailed; повторов нет.
func (g *ProposalGenerator) Generate(ctx context.Context, prompt string) (*models.ProposalContent, error) {
	raw, err := g.text.GenerateText(ctx, SystemInstruction, prompt)
	if err != nil {
		g.log.WithError(err).Error("ai: ошибка запроса к генератору")
		return nil, apperror.ErrGenerationFailed
	}

	content, err := ParseProposalContent(raw)
	if err != nil {
		g.log.WithError(err).WithField("response_length", len(raw)).Error("ai: не удалось разобрать ответ генератора")
		return nil, apperror.ErrGenerationFailed
	}

	return content, nil
}

// ParseProposalContent снимает обрамление ```json ... ``` и разбирает JSON объект.
// Частичное восстановление не выполняется.
func ParseProposalContent(text string) (*models.ProposalContent, error) {
	cleaned := StripCodeFences(text)
	if cleaned == "" {
		return nil, errEmptyResponse
	}
	if !strings.HasPrefix(cleaned, "{") {
		return nil, fmt.Errorf("ai: ответ не является JSON объектом")
	}

	var content models.ProposalContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("ai: невалидный JSON: %w", err)
	}
	return &content, nil
}

// StripCodeFences убирает ведущий и завершающий маркеры блока кода.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Тег языка после открывающего маркера (json, JSON, ...)
		text = strings.TrimLeftFunc(text, unicode.IsLetter)
		text = strings.TrimSpace(text)
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	return text
}
