package create_exception

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createException "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_exception"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase CreateExceptionUseCase
	logger  Logger
}

func NewHandler(useCase CreateExceptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule-exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /schedule-exceptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		var limitErr *createException.LimitExceededError
		switch {
		case errors.As(err, &limitErr):
			// Бизнес-отказ: клиентская ошибка со структурированными цифрами,
			// отличная от инфраструктурных 5xx
			h.logger.Warn("POST /schedule-exceptions - Daily limit exceeded: provider_id=%d, used=%d, requested=%d",
				req.ProviderID, limitErr.UsedMinutes, limitErr.RequestedMinutes)
			handlers.RespondJSON(w, http.StatusConflict, FromLimitExceededError(limitErr))

		case errors.Is(err, createException.ErrValidation):
			h.logger.Warn("POST /schedule-exceptions - Validation failed: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createException.ErrPersistence):
			h.logger.Error("POST /schedule-exceptions - Persistence failure: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("POST /schedule-exceptions - Failed to create exception: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-exceptions - Exception created successfully: exception_id=%d, provider_id=%d, category=%s",
		result.ID, req.ProviderID, result.Category)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
