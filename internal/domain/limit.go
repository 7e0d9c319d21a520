package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// LimitRule правило дневного лимита времени для категории исключений
// Администрируется отдельно; движок допуска читает правила и никогда не меняет
type LimitRule struct {
	ID int64

	// ProviderID nil = глобальное правило, действует для всех провайдеров
	ProviderID *int64

	// Category категория исключений, к которой применяется лимит
	// CategoryAny = лимит на суммарное время любых категорий
	Category ExceptionCategory

	// DailyBudgetMinutes дневной лимит в минутах
	// Нормализуется из исторических строковых форматов на границе чтения
	DailyBudgetMinutes int

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal проверяет, что правило действует для всех провайдеров
func (r *LimitRule) IsGlobal() bool {
	return r.ProviderID == nil
}

// IsProviderSpecific проверяет, что правило привязано к конкретному провайдеру
func (r *LimitRule) IsProviderSpecific() bool {
	return r.ProviderID != nil
}

// IsWildcard проверяет, что правило покрывает любую категорию исключений
func (r *LimitRule) IsWildcard() bool {
	return r.Category == CategoryAny
}

// BudgetLabel возвращает лимит в читаемой форме ("1h30min")
func (r *LimitRule) BudgetLabel() string {
	return types.FormatDurationMinutes(r.DailyBudgetMinutes)
}
