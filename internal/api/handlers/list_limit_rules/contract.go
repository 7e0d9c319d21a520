package list_limit_rules

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/limits/models"
)

type LimitsService interface {
	GetProviderRules(ctx context.Context, providerID int64) ([]*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
