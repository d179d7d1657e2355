package models

import "time"

// ExecutiveSummary блок резюме предложения.
type ExecutiveSummary struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	KeyBenefits []string `json:"keyBenefits"`
}

// OnboardingQuote стоимость внедрения в смете.
type OnboardingQuote struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// Quote смета. Все цены приходят от генератора строками и не пересчитываются.
type Quote struct {
	PlanName         string          `json:"planName"`
	PricePerUser     string          `json:"pricePerUser"`
	BillingFrequency string          `json:"billingFrequency"`
	SoftwareTotal    string          `json:"softwareTotal"`
	Onboarding       OnboardingQuote `json:"onboarding"`
	TotalAnnualCost  string          `json:"totalAnnualCost"`
	FeaturesList     []string        `json:"featuresList"`
	ClosingStatement string          `json:"closingStatement"`
}

// ProposalContent результат генерации.
type ProposalContent struct {
	ExecutiveSummary ExecutiveSummary `json:"executiveSummary"`
	Quote            Quote            `json:"quote"`
}

// UnixMillis момент времени в миллисекундах Unix, как его хранят клиенты.
type UnixMillis int64

// MillisOf переводит time.Time в UnixMillis.
func MillisOf(t time.Time) UnixMillis {
	return UnixMillis(t.UnixMilli())
}

// Time возвращает момент как time.Time.
func (m UnixMillis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// IsZero сообщает, что значение не задано.
func (m UnixMillis) IsZero() bool {
	return m == 0
}

// SavedProposal сохранённое предложение.
type SavedProposal struct {
	ID           string          `json:"id"`
	CreatedAt    UnixMillis      `json:"createdAt,omitempty"`
	LastModified UnixMillis      `json:"lastModified"`
	FirmData     FirmData        `json:"firmData"`
	Content      ProposalContent `json:"content"`
}

// AgeReference момент, от которого считается срок хранения:
// createdAt, а для старых записей без него lastModified.
func (p SavedProposal) AgeReference() time.Time {
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt.Time()
	}
	return p.LastModified.Time()
}

// IsExpired сообщает, что предложение старше окна хранения на момент now.
func (p SavedProposal) IsExpired(now time.Time, retention time.Duration) bool {
	return now.Sub(p.AgeReference()) >= retention
}
