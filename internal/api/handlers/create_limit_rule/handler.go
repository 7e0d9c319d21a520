package create_limit_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCategory    = "некорректная категория исключения"
	msgInvalidBudget      = "некорректный формат дневного лимита, ожидается HH:MM:SS или '1 hour 30 minutes'"
)

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

// Handle POST /api/v1/limit-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLimitRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /limit-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRule(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, limits.ErrInvalidBudget):
			h.logger.Warn("POST /limit-rules - Invalid budget %q: %v", req.DailyBudget, err)
			handlers.RespondBadRequest(w, msgInvalidBudget)
		case errors.Is(err, limits.ErrInvalidInput):
			h.logger.Warn("POST /limit-rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)
		default:
			h.logger.Error("POST /limit-rules - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /limit-rules - Rule created successfully: rule_id=%d, category=%s, global=%t",
		result.ID, result.Category, result.Global)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
