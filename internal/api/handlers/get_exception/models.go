package get_exception

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions/models"
)

// ExceptionResponse исключение расписания в HTTP-ответе
// Поля dataFormatada/horaInicio/horaFim закреплены контрактом клиента
type ExceptionResponse struct {
	ID           int64   `json:"id"`
	ProviderID   int64   `json:"providerId"`
	Kind         string  `json:"kind"`
	Reason       string  `json:"reason"`
	Category     string  `json:"category"`
	AnchorDate   string  `json:"anchorDate"`
	RangeEndDate *string `json:"rangeEndDate,omitempty"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	IsAvailable  bool    `json:"isAvailable"`

	DisplayDate    string `json:"dataFormatada"`
	DisplayEndDate string `json:"dataFimFormatada,omitempty"`
	DisplayStart   string `json:"horaInicio,omitempty"`
	DisplayEnd     string `json:"horaFim,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(item *models.ExceptionResponse) *ExceptionResponse {
	resp := &ExceptionResponse{
		ID:             item.ID,
		ProviderID:     item.ProviderID,
		Kind:           item.Kind,
		Reason:         item.Reason,
		Category:       item.Category,
		AnchorDate:     item.AnchorDate.Format(domain.DateFormat),
		IsAvailable:    item.IsAvailable,
		DisplayDate:    item.DisplayDate,
		DisplayEndDate: item.DisplayEndDate,
		DisplayStart:   item.DisplayStartTime,
		DisplayEnd:     item.DisplayEndTime,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
	if item.RangeEndDate != nil {
		end := item.RangeEndDate.Format(domain.DateFormat)
		resp.RangeEndDate = &end
	}
	if item.StartTime != nil {
		start := item.StartTime.Format(time.RFC3339)
		resp.StartTime = &start
	}
	if item.EndTime != nil {
		end := item.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}
