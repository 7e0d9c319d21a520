package delete_exception

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

// Handle DELETE /api/v1/schedule-exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exceptionID, err := strconv.ParseInt(vars["exceptionId"], 10, 64)
	if err != nil || exceptionID <= 0 {
		h.logger.Warn("DELETE /schedule-exceptions/{exceptionId} - Invalid exception id: %s", vars["exceptionId"])
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.service.Delete(r.Context(), exceptionID); err != nil {
		switch {
		case errors.Is(err, exceptions.ErrExceptionNotFound):
			h.logger.Warn("DELETE /schedule-exceptions/%d - Exception not found", exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)
		default:
			h.logger.Error("DELETE /schedule-exceptions/%d - Failed to delete exception: %v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-exceptions/%d - Exception deleted successfully", exceptionID)
	w.WriteHeader(http.StatusNoContent)
}
