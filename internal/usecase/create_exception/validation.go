package create_exception

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует структурные требования запроса по типу исключения
// Любое нарушение - ErrValidation, до проверки лимита дело не доходит
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrValidation)
	}

	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, string(req.Kind))
	}

	// Причина обязательна всегда - по ней работает классификатор
	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrValidation, domain.MaxReasonLength)
	}

	switch req.Kind {
	case domain.KindRecurring:
		return validateRecurring(req)
	case domain.KindPunctual:
		return validatePunctual(req)
	case domain.KindRangeBlock:
		return validateRangeBlock(req)
	}
	return nil
}

// validateRecurring у повторяющегося блока обязательны оба времени
func validateRecurring(req *Request) error {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: recurring exception requires startTime and endTime", ErrValidation)
	}
	return validateTimePair(req)
}

// validatePunctual у разового исключения обязательна дата,
// времена либо оба заданы, либо оба отсутствуют
func validatePunctual(req *Request) error {
	if req.AnchorDate.IsZero() {
		return fmt.Errorf("%w: punctual exception requires anchorDate", ErrValidation)
	}
	if req.RangeEndDate != nil {
		return fmt.Errorf("%w: rangeEndDate is only valid for range_block", ErrValidation)
	}
	if req.StartTime.IsZero() != req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime must be set together", ErrValidation)
	}
	if !req.StartTime.IsZero() {
		return validateTimePair(req)
	}
	return nil
}

// validateRangeBlock у диапазона обязательна дата начала,
// конец диапазона не раньше начала, времена не задаются
func validateRangeBlock(req *Request) error {
	if req.AnchorDate.IsZero() {
		return fmt.Errorf("%w: range_block exception requires anchorDate", ErrValidation)
	}
	if !req.StartTime.IsZero() || !req.EndTime.IsZero() {
		return fmt.Errorf("%w: range_block exception is full-day, times are not allowed", ErrValidation)
	}
	if req.RangeEndDate != nil {
		if req.RangeEndDate.Before(req.AnchorDate) {
			return fmt.Errorf("%w: rangeEndDate must not be before anchorDate", ErrValidation)
		}
		if req.RangeEndDate.Sub(req.AnchorDate).Hours() > 24*domain.MaxRangeBlockDays {
			return fmt.Errorf("%w: range exceeds %d days", ErrValidation, domain.MaxRangeBlockDays)
		}
	}
	return nil
}

// validateTimePair проверяет формат времен и что начало строго раньше конца
func validateTimePair(req *Request) error {
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrValidation, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrValidation, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrValidation)
	}
	return nil
}
