package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// CreateRuleRequest запрос на создание правила лимита
type CreateRuleRequest struct {
	// ProviderID nil = глобальное правило
	ProviderID *int64

	// Category категория исключений ("lunch", "break", ..., "any")
	Category string

	// DailyBudget лимит в одном из поддерживаемых форматов:
	// "HH:MM:SS" или "1 hour 30 minutes"
	DailyBudget string

	Active bool
}

// RuleResponse ответ с правилом лимита
type RuleResponse struct {
	ID                 int64
	ProviderID         *int64
	Category           string
	DailyBudgetMinutes int
	DailyBudgetLabel   string // Читаемая форма ("1h30min")
	Global             bool
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FromDomainRule конвертирует доменную модель в response
func FromDomainRule(rule *domain.LimitRule) *RuleResponse {
	return &RuleResponse{
		ID:                 rule.ID,
		ProviderID:         rule.ProviderID,
		Category:           string(rule.Category),
		DailyBudgetMinutes: rule.DailyBudgetMinutes,
		DailyBudgetLabel:   rule.BudgetLabel(),
		Global:             rule.IsGlobal(),
		Active:             rule.Active,
		CreatedAt:          rule.CreatedAt,
		UpdatedAt:          rule.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.LimitRule) []*RuleResponse {
	out := make([]*RuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, FromDomainRule(rule))
	}
	return out
}
