package limits

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// LimitRuleRepository интерфейс репозитория правил лимитов
type LimitRuleRepository interface {
	Create(ctx context.Context, rule *domain.LimitRule) (*domain.LimitRule, error)
	FindActive(ctx context.Context, providerID *int64, category domain.ExceptionCategory) (*domain.LimitRule, error)
	GetForProvider(ctx context.Context, providerID int64) ([]*domain.LimitRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
