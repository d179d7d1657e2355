package models

// FirmData данные о фирме клиента, собранные мастером.
type FirmData struct {
	FirmName           string            `json:"firmName"`
	ContactName        string            `json:"contactName"`
	FirmSize           int               `json:"firmSize"`
	Language           Language          `json:"language"`
	SelectedPlan       Plan              `json:"selectedPlan"`
	SelectedOnboarding OnboardingPackage `json:"selectedOnboarding"`
	Features           []string          `json:"features"`
	Transcript         string            `json:"transcript"`
	AdditionalContext  string            `json:"additionalContext"`
	AccountExecutive   *AccountExecutive `json:"accountExecutive,omitempty"`
}

// NormalizePlan переключает Essentials на Pro, если пользователей больше одного.
// Возвращает true, если план был изменён.
func (f *FirmData) NormalizePlan() bool {
	if f.SelectedPlan == PlanEssentials && f.FirmSize != 1 {
		f.SelectedPlan = PlanPro
		return true
	}
	return false
}
