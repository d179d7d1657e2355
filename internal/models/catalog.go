package models

// OnboardingPackage пакет внедрения из фиксированного каталога.
type OnboardingPackage struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	PriceDisplay string   `json:"priceDisplay"`
	IdealFor     string   `json:"idealFor"`
	Features     []string `json:"features"`
}

// FeatureCategory категория функций с упорядоченным списком.
type FeatureCategory struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

var onboardingPackages = []OnboardingPackage{
	{
		ID:           "group",
		Name:         "Group Onboarding",
		Price:        0,
		PriceDisplay: "Free",
		IdealFor:     "Self-starters",
		Features:     []string{"Live 1-hour sessions (Mon-Thu)", "Group-led by Customer Success"},
	},
	{
		ID:           "guided",
		Name:         "Guided Onboarding",
		Price:        999,
		PriceDisplay: "$999",
		IdealFor:     "Growing firms",
		Features:     []string{"1 hr kickoff + 5 consultations", "1 custom workflow setup", "Dedicated Manager (90 days)"},
	},
	{
		ID:           "enhanced",
		Name:         "Enhanced",
		Price:        1999,
		PriceDisplay: "$1,999",
		IdealFor:     "Firms needing strategy",
		Features:     []string{"1 hr kickoff + 8 consultations", "Up to 2 workflows setup", "Senior Manager (120 days)"},
	},
	{
		ID:           "premium",
		Name:         "Premium",
		Price:        3499,
		PriceDisplay: "$3,499",
		IdealFor:     "Enterprise speed",
		Features:     []string{"Done-for-you setup (full)", "Private Slack Channel", "Senior Manager (60-90 days)", "Go live within 3 weeks"},
	},
}

var featureCategories = []FeatureCategory{
	{Name: "Client Experience", Features: []string{
		"Client Portal",
		"Mobile App (White-labeled)",
		"Secure Client Chats",
		"Organizers & Intake Forms",
		"Multi-language Support",
	}},
	{Name: "Workflow & Automation", Features: []string{
		"Workflow Automation",
		"Kanban Project Management",
		"Auto-reminders",
		"Task Management",
		"Job Statuses & Templates",
	}},
	{Name: "Documents & Signatures", Features: []string{
		"Unlimited Document Storage",
		"Unlimited e-Signatures",
		"PDF Editor",
		"KBA (Knowledge-Based Auth)",
		"Smart Categorization",
	}},
	{Name: "Billing & Revenue", Features: []string{
		"Proposals & Engagement Letters",
		"Invoicing & Payments",
		"Time Tracking & WIP",
		"Recurring Invoices",
	}},
	{Name: "Integrations & Tech", Features: []string{
		"QuickBooks Online Integration",
		"IRS Transcripts Integration",
		"Email Sync",
		"Zapier Integration",
		"AI-Powered Reporting",
	}},
}

var knownFeatures = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, cat := range featureCategories {
		for _, f := range cat.Features {
			m[f] = struct{}{}
		}
	}
	return m
}()

// OnboardingPackages возвращает копию каталога пакетов внедрения.
func OnboardingPackages() []OnboardingPackage {
	out := make([]OnboardingPackage, len(onboardingPackages))
	for i, p := range onboardingPackages {
		out[i] = p.clone()
	}
	return out
}

// FindOnboardingPackage ищет пакет по id.
func FindOnboardingPackage(id string) (OnboardingPackage, bool) {
	for _, p := range onboardingPackages {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return OnboardingPackage{}, false
}

// DefaultOnboardingPackage первый пакет каталога.
func DefaultOnboardingPackage() OnboardingPackage {
	return onboardingPackages[0].clone()
}

// FeatureCategories возвращает копию каталога функций.
func FeatureCategories() []FeatureCategory {
	out := make([]FeatureCategory, len(featureCategories))
	for i, c := range featureCategories {
		out[i] = FeatureCategory{Name: c.Name, Features: append([]string(nil), c.Features...)}
	}
	return out
}

// IsKnownFeature проверяет, что функция есть в каталоге.
func IsKnownFeature(name string) bool {
	_, ok := knownFeatures[name]
	return ok
}

func (p OnboardingPackage) clone() OnboardingPackage {
	p.Features = append([]string(nil), p.Features...)
	return p
}
