package create_exception

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ExceptionRepository интерфейс репозитория исключений расписания
type ExceptionRepository interface {
	Create(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderExceptionsFilter) ([]*domain.ScheduleException, error)
}

// LimitResolver интерфейс сервиса разрешения правил лимитов
type LimitResolver interface {
	Resolve(ctx context.Context, providerID int64, category domain.ExceptionCategory) (*domain.LimitRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
