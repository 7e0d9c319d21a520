package domain

import "time"

// ExceptionKind тип исключения расписания
type ExceptionKind string

const (
	// KindRecurring ежедневный повторяющийся блок (обед, перерыв)
	// Дата записи номинальная, значимы только времена начала и конца
	KindRecurring ExceptionKind = "recurring"

	// KindPunctual разовое исключение на конкретную дату
	// Времена начала и конца опциональны (без них - весь день)
	KindPunctual ExceptionKind = "punctual"

	// KindRangeBlock блок на диапазон дат (отпуск, праздники)
	KindRangeBlock ExceptionKind = "range_block"
)

// ValidKinds список допустимых типов исключений
var ValidKinds = []ExceptionKind{KindRecurring, KindPunctual, KindRangeBlock}

// IsValid проверяет, что тип исключения известен
func (k ExceptionKind) IsValid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// ScheduleException запись о недоступности провайдера (или переопределении
// доступности) в расписании
type ScheduleException struct {
	ID         int64
	ProviderID int64
	Kind       ExceptionKind
	Reason     string

	// AnchorDate дата, под которой запись заведена
	// Для recurring - номинальная дата, для punctual/range_block - реальная дата начала
	AnchorDate time.Time

	// RangeEndDate конец диапазона, только для range_block (nil = один день)
	RangeEndDate *time.Time

	// StartTime/EndTime абсолютные моменты начала и конца
	// Обязательны для recurring, опциональны для punctual, отсутствуют для range_block
	StartTime *time.Time
	EndTime   *time.Time

	// IsAvailable false = провайдер недоступен (участвует в учете лимита),
	// true = исключение-переопределение "доступен вне обычного графика"
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking проверяет, что исключение блокирует время провайдера
func (e *ScheduleException) IsBlocking() bool {
	return !e.IsAvailable
}

// HasTimes проверяет, что заданы оба момента - начало и конец
func (e *ScheduleException) HasTimes() bool {
	return e.StartTime != nil && e.EndTime != nil
}

// CountsTowardBudget проверяет, что исключение участвует в учете
// дневного лимита времени
func (e *ScheduleException) CountsTowardBudget() bool {
	return e.IsBlocking() && e.HasTimes()
}

// DurationMinutes возвращает заблокированную длительность в минутах
// Без времен или при неположительном интервале (мусор в данных) возвращает 0
func (e *ScheduleException) DurationMinutes() int {
	if !e.HasTimes() {
		return 0
	}
	minutes := int(e.EndTime.Sub(*e.StartTime).Minutes())
	if minutes <= 0 {
		return 0
	}
	return minutes
}

// IsMultiDay проверяет, что блок диапазона охватывает больше одного дня
func (e *ScheduleException) IsMultiDay() bool {
	return e.RangeEndDate != nil && e.RangeEndDate.After(e.AnchorDate)
}

// ProviderExceptionsFilter фильтр для выборки исключений провайдера
type ProviderExceptionsFilter struct {
	ProviderID   int64      // Обязательный параметр
	StartDate    *time.Time // Начало периода по anchor_date (опционально)
	EndDate      *time.Time // Конец периода по anchor_date (опционально)
	OnlyBlocking bool       // Только записи с is_available = false
}
