package models

// Plan тарифный план, значение совпадает с отображаемым названием.
type Plan string

// Plan константы тарифов
const (
	PlanEssentials Plan = "TaxDome Essentials"
	PlanPro        Plan = "TaxDome Pro"
	PlanBusiness   Plan = "TaxDome Business"
)

// Language язык генерируемого документа
type Language string

// Language константы языков
const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
)

// Plans тарифы в порядке отображения
var Plans = []Plan{PlanEssentials, PlanPro, PlanBusiness}

// ValidPlans список валидных тарифов
var ValidPlans = map[Plan]struct{}{
	PlanEssentials: {},
	PlanPro:        {},
	PlanBusiness:   {},
}

// ValidLanguages список валидных языков
var ValidLanguages = map[Language]struct{}{
	LanguageEnglish: {},
	LanguageSpanish: {},
}

// ProposalRetentionDays срок хранения сохранённого предложения.
const ProposalRetentionDays = 30
