package create_exception

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на создание исключения расписания
type Request struct {
	ProviderID int64                // ID провайдера услуг
	Kind       domain.ExceptionKind // Тип исключения
	Reason     string               // Причина (свободный текст, обязательна)

	// AnchorDate дата исключения; для recurring может быть нулевой -
	// тогда подставляется текущая дата как номинальная
	AnchorDate time.Time

	// RangeEndDate конец диапазона, только для range_block
	RangeEndDate *time.Time

	// StartTime/EndTime времена начала и конца ("HH:MM", в операционной зоне)
	// Обязательны для recurring, опциональны для punctual
	StartTime types.TimeString
	EndTime   types.TimeString

	// IsAvailable true = переопределение "доступен" (не участвует в лимитах)
	IsAvailable bool
}

// Response модель ответа с созданным исключением
// Все моменты времени нормализованы в каноническую форму обмена (UTC)
type Response struct {
	ID           int64
	ProviderID   int64
	Kind         string
	Reason       string
	Category     string // Категория, определенная классификатором
	AnchorDate   time.Time
	RangeEndDate *time.Time
	StartTime    *time.Time
	EndTime      *time.Time
	IsAvailable  bool

	// Отформатированные поля для презентационного слоя клиента
	DisplayDate      string // DD/MM/YYYY в операционной зоне
	DisplayStartTime string // HH:MM в операционной зоне (пусто без времени)
	DisplayEndTime   string // HH:MM в операционной зоне (пусто без времени)

	CreatedAt time.Time
	UpdatedAt time.Time
}
