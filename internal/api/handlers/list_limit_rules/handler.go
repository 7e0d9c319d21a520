package list_limit_rules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
)

// LimitRuleItem элемент списка правил лимитов
type LimitRuleItem struct {
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

// ListLimitRulesResponse ответ со списком правил
type ListLimitRulesResponse struct {
	Rules []LimitRuleItem `json:"rules"`
	Total int             `json:"total"`
}

type Handler struct {
	service LimitsService
	logger  Logger
}

func NewHandler(service LimitsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/limit-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{providerId}/limit-rules - Invalid provider id: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetProviderRules(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, limits.ErrInvalidInput):
			h.logger.Warn("GET /providers/%d/limit-rules - Invalid input: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)
		default:
			h.logger.Error("GET /providers/%d/limit-rules - Failed to fetch rules: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%d/limit-rules - Fetched %d rules", providerID, len(result))
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(result))
}

func fromServiceResponse(rules []*models.RuleResponse) *ListLimitRulesResponse {
	out := make([]LimitRuleItem, 0, len(rules))
	for _, rule := range rules {
		out = append(out, LimitRuleItem{
			ID:                 rule.ID,
			ProviderID:         rule.ProviderID,
			Category:           rule.Category,
			DailyBudgetMinutes: rule.DailyBudgetMinutes,
			DailyBudgetLabel:   rule.DailyBudgetLabel,
			Global:             rule.Global,
			Active:             rule.Active,
			CreatedAt:          rule.CreatedAt.Format(time.RFC3339),
			UpdatedAt:          rule.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &ListLimitRulesResponse{Rules: out, Total: len(out)}
}
