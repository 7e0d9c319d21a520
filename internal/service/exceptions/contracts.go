package exceptions

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ExceptionRepository интерфейс репозитория исключений расписания
type ExceptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleException, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderExceptionsFilter) ([]*domain.ScheduleException, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
