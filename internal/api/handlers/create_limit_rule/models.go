package create_limit_rule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/service/limits/models"
)

// CreateLimitRuleRequest HTTP request model
type CreateLimitRuleRequest struct {
	ProviderID *int64 `json:"providerId,omitempty"` // null = глобальное правило
	Category   string `json:"category"`             // "lunch" | ... | "any"
	// DailyBudget принимается в обоих исторических форматах:
	// "01:30:00" или "1 hour 30 minutes"
	DailyBudget string `json:"dailyBudget"`
	Active      *bool  `json:"active,omitempty"` // По умолчанию true
}

// LimitRuleResponse HTTP response model
type LimitRuleResponse struct {
	ID                 int64  `json:"id"`
	ProviderID         *int64 `json:"providerId,omitempty"`
	Category           string `json:"category"`
	DailyBudgetMinutes int    `json:"dailyBudgetMinutes"`
	DailyBudgetLabel   string `json:"dailyBudgetLabel"`
	Global             bool   `json:"global"`
	Active             bool   `json:"active"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLimitRuleRequest) ToServiceRequest() *models.CreateRuleRequest {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.CreateRuleRequest{
		ProviderID:  r.ProviderID,
		Category:    r.Category,
		DailyBudget: r.DailyBudget,
		Active:      active,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.RuleResponse) *LimitRuleResponse {
	return &LimitRuleResponse{
		ID:                 resp.ID,
		ProviderID:         resp.ProviderID,
		Category:           resp.Category,
		DailyBudgetMinutes: resp.DailyBudgetMinutes,
		DailyBudgetLabel:   resp.DailyBudgetLabel,
		Global:             resp.Global,
		Active:             resp.Active,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
