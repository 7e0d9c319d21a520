package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
)

// ExceptionResponse исключение расписания для выдачи наружу
// Моменты времени нормализованы в UTC, поверх них - отформатированные
// поля в операционной зоне для презентационного слоя клиента
type ExceptionResponse struct {
	ID           int64
	ProviderID   int64
	Kind         string
	Reason       string
	Category     string
	AnchorDate   time.Time
	RangeEndDate *time.Time
	StartTime    *time.Time
	EndTime      *time.Time
	IsAvailable  bool

	DisplayDate      string // DD/MM/YYYY
	DisplayEndDate   string // DD/MM/YYYY (конец диапазона, пусто для одного дня)
	DisplayStartTime string // HH:MM
	DisplayEndTime   string // HH:MM

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomainException конвертирует доменную модель в response,
// классифицируя причину и форматируя поля для отображения
func FromDomainException(exc *domain.ScheduleException, n *timeops.Normalizer) *ExceptionResponse {
	resp := &ExceptionResponse{
		ID:          exc.ID,
		ProviderID:  exc.ProviderID,
		Kind:        string(exc.Kind),
		Reason:      exc.Reason,
		Category:    string(domain.ClassifyReason(exc.Reason)),
		AnchorDate:  n.ToDisplay(exc.AnchorDate),
		IsAvailable: exc.IsAvailable,
		DisplayDate: exc.AnchorDate.In(n.Location()).Format(domain.DisplayDateFormat),
		CreatedAt:   n.ToDisplay(exc.CreatedAt),
		UpdatedAt:   n.ToDisplay(exc.UpdatedAt),
	}
	if exc.RangeEndDate != nil {
		end := n.ToDisplay(*exc.RangeEndDate)
		resp.RangeEndDate = &end
		resp.DisplayEndDate = exc.RangeEndDate.In(n.Location()).Format(domain.DisplayDateFormat)
	}
	if exc.StartTime != nil {
		start := n.ToDisplay(*exc.StartTime)
		resp.StartTime = &start
		resp.DisplayStartTime = n.TimeOnly(*exc.StartTime).String()
	}
	if exc.EndTime != nil {
		end := n.ToDisplay(*exc.EndTime)
		resp.EndTime = &end
		resp.DisplayEndTime = n.TimeOnly(*exc.EndTime).String()
	}
	return resp
}

// FromDomainExceptionList конвертирует список исключений
func FromDomainExceptionList(exceptions []*domain.ScheduleException, n *timeops.Normalizer) []*ExceptionResponse {
	out := make([]*ExceptionResponse, 0, len(exceptions))
	for _, exc := range exceptions {
		out = append(out, FromDomainException(exc, n))
	}
	return out
}
