package limitrule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило лимита не найдено
	ErrRuleNotFound = errors.New("limitrule.repository: limit rule not found")

	// ErrInvalidBudget возвращается, когда сохраненный лимит не парсится
	// ни в одном из поддерживаемых форматов
	ErrInvalidBudget = errors.New("limitrule.repository: invalid daily budget value")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("limitrule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("limitrule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("limitrule.repository: failed to scan row")
)
