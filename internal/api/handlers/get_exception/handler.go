package get_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions"
)

const (
	msgInvalidExceptionID = "некорректный ID исключения"
	msgExceptionNotFound  = "исключение не найдено"
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

// Handle GET /api/v1/schedule-exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exceptionID, err := strconv.ParseInt(vars["exceptionId"], 10, 64)
	if err != nil || exceptionID <= 0 {
		h.logger.Warn("GET /schedule-exceptions/{exceptionId} - Invalid exception id: %s", vars["exceptionId"])
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), exceptionID)
	if err != nil {
		switch {
		case errors.Is(err, exceptions.ErrExceptionNotFound):
			h.logger.Warn("GET /schedule-exceptions/%d - Exception not found", exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)
		default:
			h.logger.Error("GET /schedule-exceptions/%d - Failed to fetch exception: %v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule-exceptions/%d - Exception retrieved successfully", exceptionID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
