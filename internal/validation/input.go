package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// Константы валидации
const (
	MaxFirmNameLength      = 200
	MaxContactNameLength   = 100
	MaxFirmSize            = 100000
	MaxTranscriptLength    = 50000
	MaxContextLength       = 5000
	MaxAENameLength        = 100
	MaxPromptLength        = 20000
	MaxAccountExecutives   = 200
	MaxSelectedFeatureSize = 64
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("email has an invalid format")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email local part must be 1 to 64 characters")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email domain must be 1 to 255 characters")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("email local part contains invalid characters")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("email domain has an invalid format")
	}

	return nil
}

// ValidateFirmDetails проверяет первый шаг мастера: фирма, контакт, размер, менеджер.
func ValidateFirmDetails(f models.FirmData) error {
	if err := ValidateNonEmpty("firm name", f.FirmName); err != nil {
		return err
	}
	if err := ValidateLength("firm name", strings.TrimSpace(f.FirmName), 0, MaxFirmNameLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("contact name", f.ContactName); err != nil {
		return err
	}
	if err := ValidateLength("contact name", strings.TrimSpace(f.ContactName), 0, MaxContactNameLength); err != nil {
		return err
	}
	if f.FirmSize <= 0 {
		return fmt.Errorf("firm size must be a positive number")
	}
	if f.FirmSize > MaxFirmSize {
		return fmt.Errorf("firm size cannot exceed %d", MaxFirmSize)
	}
	if f.AccountExecutive == nil || strings.TrimSpace(f.AccountExecutive.ID) == "" {
		return fmt.Errorf("an account executive must be selected")
	}
	if _, ok := models.ValidLanguages[f.Language]; !ok {
		return fmt.Errorf("language must be English or Spanish")
	}
	if _, ok := models.ValidPlans[f.SelectedPlan]; !ok {
		return fmt.Errorf("unknown plan %q", f.SelectedPlan)
	}
	return nil
}

// ValidateFeatureSelection проверяет второй шаг мастера: хотя бы одна функция из каталога.
func ValidateFeatureSelection(features []string) error {
	if len(features) == 0 {
		return fmt.Errorf("select at least one feature")
	}
	if len(features) > MaxSelectedFeatureSize {
		return fmt.Errorf("too many features selected")
	}
	seen := make(map[string]struct{}, len(features))
	for _, feat := range features {
		if !models.IsKnownFeature(feat) {
			return fmt.Errorf("unknown feature %q", feat)
		}
		if _, dup := seen[feat]; dup {
			return fmt.Errorf("feature %q is selected twice", feat)
		}
		seen[feat] = struct{}{}
	}
	return nil
}

// ValidateFreeText проверяет длину расшифровки звонка и заметок.
func ValidateFreeText(transcript, context string) error {
	if err := ValidateLength("transcript", transcript, 0, MaxTranscriptLength); err != nil {
		return err
	}
	return ValidateLength("additional context", context, 0, MaxContextLength)
}

// ValidateAccountExecutive проверяет одного менеджера.
func ValidateAccountExecutive(ae models.AccountExecutive) error {
	if err := ValidateNonEmpty("account executive name", ae.Name); err != nil {
		return err
	}
	if err := ValidateLength("account executive name", strings.TrimSpace(ae.Name), 0, MaxAENameLength); err != nil {
		return err
	}
	return ValidateEmail(ae.Email)
}

// ValidateAccountExecutives проверяет список целиком: не пустой, id уникальны.
func ValidateAccountExecutives(list []models.AccountExecutive) error {
	if len(list) == 0 {
		return fmt.Errorf("You must have at least one Account Executive.")
	}
	if len(list) > MaxAccountExecutives {
		return fmt.Errorf("the team cannot have more than %d account executives", MaxAccountExecutives)
	}
	seen := make(map[string]struct{}, len(list))
	for _, ae := range list {
		if strings.TrimSpace(ae.ID) == "" {
			return fmt.Errorf("account executive id is required")
		}
		if _, dup := seen[ae.ID]; dup {
			return fmt.Errorf("account executive id %q is used twice", ae.ID)
		}
		seen[ae.ID] = struct{}{}
		if err := ValidateAccountExecutive(ae); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePromptTemplate проверяет шаблон промпта.
func ValidatePromptTemplate(template string) error {
	if err := ValidateNonEmpty("prompt template", template); err != nil {
		return err
	}
	return ValidateLength("prompt template", template, 0, MaxPromptLength)
}
