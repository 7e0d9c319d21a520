package list_exceptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
)

type Handler struct {
	service ExceptionsService
	logger  Logger
}

func NewHandler(service ExceptionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/schedule-exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{providerId}/schedule-exceptions - Invalid provider id: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetProviderExceptions(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, exceptions.ErrInvalidInput):
			h.logger.Warn("GET /providers/%d/schedule-exceptions - Invalid input: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)
		default:
			h.logger.Error("GET /providers/%d/schedule-exceptions - Failed to fetch exceptions: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%d/schedule-exceptions - Fetched %d exceptions", providerID, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
