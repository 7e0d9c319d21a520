package create_exception

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createException "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_exception"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	ProviderID   int64   `json:"providerId"`
	Kind         string  `json:"kind"`                   // "recurring" | "punctual" | "range_block"
	Reason       string  `json:"reason"`                 // Свободный текст, обязателен
	AnchorDate   string  `json:"anchorDate,omitempty"`   // "2025-10-15"
	RangeEndDate *string `json:"rangeEndDate,omitempty"` // "2025-10-20"
	StartTime    string  `json:"startTime,omitempty"`    // "12:00"
	EndTime      string  `json:"endTime,omitempty"`      // "13:00"
	IsAvailable  *bool   `json:"isAvailable,omitempty"`  // По умолчанию false (блокировка)
}

// ExceptionResponse HTTP response model
// Времена в UTC RFC3339; поля dataFormatada/horaInicio/horaFim
// предварительно отформатированы в операционной зоне - имена полей
// закреплены контрактом существующего клиентского приложения
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

	DisplayDate      string `json:"dataFormatada"`
	DisplayStartTime string `json:"horaInicio,omitempty"`
	DisplayEndTime   string `json:"horaFim,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LimitExceededResponse структурированный отказ по дневному лимиту
// Имена полей закреплены контрактом существующего клиентского приложения
type LimitExceededResponse struct {
	Error            string `json:"error"`
	Category         string `json:"categoria"`
	BudgetLabel      string `json:"limite_diario"`
	BudgetMinutes    int    `json:"limite_minutos"`
	UsedMinutes      int    `json:"tempo_ja_usado"`
	RequestedMinutes int    `json:"tempo_solicitado"`
	RemainingMinutes int    `json:"tempo_restante"`
	Scope            string `json:"escopo"` // "profissional" | "global"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом дат и времен)
func (r *CreateExceptionRequest) ToUseCaseRequest() (*createException.Request, error) {
	req := &createException.Request{
		ProviderID: r.ProviderID,
		Kind:       domain.ExceptionKind(r.Kind),
		Reason:     r.Reason,
	}

	if r.AnchorDate != "" {
		anchorDate, err := time.Parse(domain.DateFormat, r.AnchorDate)
		if err != nil {
			return nil, err
		}
		req.AnchorDate = anchorDate
	}

	if r.RangeEndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.RangeEndDate)
		if err != nil {
			return nil, err
		}
		req.RangeEndDate = &endDate
	}

	if r.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = startTime
	}

	if r.EndTime != "" {
		endTime, err := types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = endTime
	}

	if r.IsAvailable != nil {
		req.IsAvailable = *r.IsAvailable
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createException.Response) *ExceptionResponse {
	out := &ExceptionResponse{
		ID:               resp.ID,
		ProviderID:       resp.ProviderID,
		Kind:             resp.Kind,
		Reason:           resp.Reason,
		Category:         resp.Category,
		AnchorDate:       resp.AnchorDate.Format(domain.DateFormat),
		IsAvailable:      resp.IsAvailable,
		DisplayDate:      resp.DisplayDate,
		DisplayStartTime: resp.DisplayStartTime,
		DisplayEndTime:   resp.DisplayEndTime,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.RangeEndDate != nil {
		end := resp.RangeEndDate.Format(domain.DateFormat)
		out.RangeEndDate = &end
	}
	if resp.StartTime != nil {
		start := resp.StartTime.Format(time.RFC3339)
		out.StartTime = &start
	}
	if resp.EndTime != nil {
		end := resp.EndTime.Format(time.RFC3339)
		out.EndTime = &end
	}
	return out
}

// FromLimitExceededError конвертирует отказ по лимиту в HTTP response
func FromLimitExceededError(e *createException.LimitExceededError) *LimitExceededResponse {
	scope := "profissional"
	if e.GlobalRule {
		scope = "global"
	}
	return &LimitExceededResponse{
		Error:            "limite diário de tempo excedido",
		Category:         e.Category,
		BudgetLabel:      e.BudgetLabel,
		BudgetMinutes:    e.BudgetMinutes,
		UsedMinutes:      e.UsedMinutes,
		RequestedMinutes: e.RequestedMinutes,
		RemainingMinutes: e.RemainingMinutes,
		Scope:            scope,
	}
}
