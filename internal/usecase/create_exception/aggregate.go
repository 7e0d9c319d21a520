package create_exception

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// sumUsedMinutes суммирует минуты, уже занятые сегодня исключениями
// целевой категории (или любыми, если правило с wildcard-категорией)
//
// Учитываются только блокирующие записи с обоими временами; неположительные
// интервалы отбрасываются как мусор в данных. Пересекающиеся исключения
// суммируются без объединения интервалов - известное сознательное упрощение,
// его поведение закреплено существующими данными
func sumUsedMinutes(exceptions []*domain.ScheduleException, target domain.ExceptionCategory) int {
	total := 0
	for _, exc := range exceptions {
		if !exc.CountsTowardBudget() {
			continue
		}
		if target != domain.CategoryAny && domain.ClassifyReason(exc.Reason) != target {
			continue
		}
		total += exc.DurationMinutes()
	}
	return total
}
