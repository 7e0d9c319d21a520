package get_exception

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions/models"
)

type ExceptionsService interface {
	GetByID(ctx context.Context, id int64) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
