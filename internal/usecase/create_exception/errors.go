package create_exception

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation возвращается при некорректном или неполном запросе
	// Всегда вина вызывающего; побочных эффектов нет
	ErrValidation = errors.New("create_exception: validation failed")

	// ErrLimitExceeded возвращается, когда запрос превышает дневной лимит
	// Конкретные цифры несет *LimitExceededError (проверяется через errors.As)
	ErrLimitExceeded = errors.New("create_exception: daily limit exceeded")

	// ErrPersistence возвращается при инфраструктурной ошибке записи
	// Повторов нет - решение о пересылке за вызывающим
	ErrPersistence = errors.New("create_exception: failed to persist exception")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_exception: internal error")
)

// LimitExceededError отказ по дневному лимиту со всеми цифрами,
// обосновывающими решение
type LimitExceededError struct {
	// Category категория, по которой сработал лимит
	Category string

	// BudgetLabel лимит в читаемой форме ("1h00min")
	BudgetLabel string

	// BudgetMinutes лимит в минутах
	BudgetMinutes int

	// UsedMinutes минуты, уже занятые сегодня исключениями этой категории
	UsedMinutes int

	// RequestedMinutes минуты, запрошенные этим исключением
	RequestedMinutes int

	// RemainingMinutes остаток лимита (не меньше 0)
	RemainingMinutes int

	// GlobalRule true, если сработало глобальное правило, а не правило провайдера
	GlobalRule bool
}

// Error реализует error
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%v: category=%s budget=%dmin used=%dmin requested=%dmin remaining=%dmin",
		ErrLimitExceeded, e.Category, e.BudgetMinutes, e.UsedMinutes, e.RequestedMinutes, e.RemainingMinutes)
}

// Is позволяет проверять отказ через errors.Is(err, ErrLimitExceeded)
func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}
