package list_exceptions

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions/models"
)

type ExceptionsService interface {
	GetProviderExceptions(ctx context.Context, providerID int64) ([]*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
