package limits

import "errors"

var (
	// ErrNoRuleConfigured возвращается, когда ни на одном уровне
	// не нашлось активного правила (лимит не настроен)
	ErrNoRuleConfigured = errors.New("limits: no limit rule configured")

	// ErrResolutionFailed возвращается при инфраструктурной ошибке чтения
	// во время разрешения лимита. Вызывающий код обязан трактовать её
	// по политике fail-open: залогировать и пропустить проверку лимита
	ErrResolutionFailed = errors.New("limits: limit resolution failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("limits: invalid input data")

	// ErrInvalidBudget возвращается при нераспознанном формате лимита
	ErrInvalidBudget = errors.New("limits: invalid daily budget format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("limits: internal error")
)
