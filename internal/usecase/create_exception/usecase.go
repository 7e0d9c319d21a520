package create_exception

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
)

// UseCase use case создания исключения расписания с контролем дневного лимита
//
// Конвейер: валидация -> классификация причины -> разрешение лимита ->
// агрегация занятого времени -> решение -> запись
// Ровно одна вставка при допуске; ноль побочных эффектов при любом отказе
type UseCase struct {
	exceptionRepo ExceptionRepository
	limitResolver LimitResolver
	txManager     TransactionManager
	normalizer    *timeops.Normalizer
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	exceptionRepo ExceptionRepository,
	limitResolver LimitResolver,
	txManager TransactionManager,
	normalizer *timeops.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		exceptionRepo: exceptionRepo,
		limitResolver: limitResolver,
		txManager:     txManager,
		normalizer:    normalizer,
		logger:        logger,
	}
}

// Execute выполняет конвейер допуска исключения
//
// Агрегация занятого времени и вставка выполняются в сериализуемой
// транзакции - иначе два одновременных запроса могут прочитать один и тот же
// остаток лимита и вместе его превысить
//
// Инфраструктурные ошибки чтения (разрешение лимита, агрегация) обрабатываются
// по политике fail-open: проверка лимита пропускается с предупреждением в логе,
// запрос не блокируется. Доступность потока записи важнее строгости контроля
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateException: provider=%d, kind=%s, reason=%q, available=%t",
		req.ProviderID, req.Kind, req.Reason, req.IsAvailable)

	// 1. Структурная валидация по типу исключения
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	// 2. Классификация причины в фиксированную таксономию
	category := domain.ClassifyReason(req.Reason)
	uc.logger.Info("CreateException: reason %q classified as %s", req.Reason, category)

	// 3. Сборка доменной записи с нормализацией времени
	// Для recurring без даты подставляется текущая дата как номинальная
	anchorDate := req.AnchorDate
	if anchorDate.IsZero() {
		anchorDate = uc.normalizer.Today()
	}
	anchorDate = uc.normalizer.DateOnly(anchorDate)

	exc := &domain.ScheduleException{
		ProviderID:  req.ProviderID,
		Kind:        req.Kind,
		Reason:      req.Reason,
		AnchorDate:  anchorDate,
		IsAvailable: req.IsAvailable,
	}
	if req.RangeEndDate != nil {
		endDate := uc.normalizer.DateOnly(*req.RangeEndDate)
		exc.RangeEndDate = &endDate
	}
	if !req.StartTime.IsZero() && !req.EndTime.IsZero() {
		start, err := uc.normalizer.Combine(anchorDate, req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", ErrValidation, err)
		}
		end, err := uc.normalizer.Combine(anchorDate, req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endTime: %v", ErrValidation, err)
		}
		exc.StartTime = &start
		exc.EndTime = &end
	}

	// 4. Разрешение правила лимита
	// Лимит применим только к блокирующим записям с обоими временами:
	// переопределения доступности и полнодневные блоки в минутах не считаются
	var rule *domain.LimitRule
	if exc.CountsTowardBudget() {
		resolved, err := uc.limitResolver.Resolve(ctx, req.ProviderID, category)
		switch {
		case err == nil:
			rule = resolved
		case errors.Is(err, limits.ErrNoRuleConfigured):
			uc.logger.Info("CreateException: no limit rule for provider=%d category=%s, admission unconstrained",
				req.ProviderID, category)
		default:
			// fail-open: инфраструктурная ошибка чтения не блокирует запрос
			uc.logger.Warn("CreateException: limit resolution failed, skipping enforcement (fail-open): %v", err)
		}
	}

	// 5-6. Агрегация и вставка в одной сериализуемой транзакции
	var result *domain.ScheduleException
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if rule != nil {
			if err := uc.enforceDailyBudget(txCtx, req.ProviderID, rule, exc.DurationMinutes()); err != nil {
				return err
			}
		}

		created, err := uc.exceptionRepo.Create(txCtx, exc)
		if err != nil {
			uc.logger.Error("CreateException: failed to persist exception: %v", err)
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateException: successfully created exception id=%d for provider=%d",
		result.ID, result.ProviderID)

	return uc.toResponse(result, category), nil
}

// enforceDailyBudget сравнивает занятое сегодня время плюс запрошенное
// с дневным лимитом; при превышении возвращает *LimitExceededError
func (uc *UseCase) enforceDailyBudget(ctx context.Context, providerID int64, rule *domain.LimitRule, requestedMinutes int) error {
	dayStart, dayEnd := uc.normalizer.DayBounds(uc.normalizer.Today())

	existing, err := uc.exceptionRepo.GetByProviderWithFilter(ctx, domain.ProviderExceptionsFilter{
		ProviderID:   providerID,
		StartDate:    &dayStart,
		EndDate:      &dayEnd,
		OnlyBlocking: true,
	})
	if err != nil {
		// fail-open: ошибка чтения занятого времени не блокирует запрос
		uc.logger.Warn("CreateException: usage aggregation failed, skipping enforcement (fail-open): %v", err)
		return nil
	}

	used := sumUsedMinutes(existing, rule.Category)

	uc.logger.Info("CreateException: budget check category=%s budget=%dmin used=%dmin requested=%dmin",
		rule.Category, rule.DailyBudgetMinutes, used, requestedMinutes)

	if used+requestedMinutes > rule.DailyBudgetMinutes {
		remaining := rule.DailyBudgetMinutes - used
		if remaining < 0 {
			remaining = 0
		}
		uc.logger.Warn("CreateException: daily limit exceeded for provider=%d category=%s (%d+%d > %d)",
			providerID, rule.Category, used, requestedMinutes, rule.DailyBudgetMinutes)
		return &LimitExceededError{
			Category:         string(rule.Category),
			BudgetLabel:      rule.BudgetLabel(),
			BudgetMinutes:    rule.DailyBudgetMinutes,
			UsedMinutes:      used,
			RequestedMinutes: requestedMinutes,
			RemainingMinutes: remaining,
			GlobalRule:       rule.IsGlobal(),
		}
	}

	return nil
}

// toResponse строит ответ с нормализованными в UTC моментами
// и предварительно отформатированными полями для клиента
func (uc *UseCase) toResponse(exc *domain.ScheduleException, category domain.ExceptionCategory) *Response {
	resp := &Response{
		ID:          exc.ID,
		ProviderID:  exc.ProviderID,
		Kind:        string(exc.Kind),
		Reason:      exc.Reason,
		Category:    string(category),
		AnchorDate:  uc.normalizer.ToDisplay(exc.AnchorDate),
		IsAvailable: exc.IsAvailable,
		DisplayDate: exc.AnchorDate.In(uc.normalizer.Location()).Format(domain.DisplayDateFormat),
		CreatedAt:   uc.normalizer.ToDisplay(exc.CreatedAt),
		UpdatedAt:   uc.normalizer.ToDisplay(exc.UpdatedAt),
	}
	if exc.RangeEndDate != nil {
		end := uc.normalizer.ToDisplay(*exc.RangeEndDate)
		resp.RangeEndDate = &end
	}
	if exc.StartTime != nil {
		start := uc.normalizer.ToDisplay(*exc.StartTime)
		resp.StartTime = &start
		resp.DisplayStartTime = uc.normalizer.TimeOnly(*exc.StartTime).String()
	}
	if exc.EndTime != nil {
		end := uc.normalizer.ToDisplay(*exc.EndTime)
		resp.EndTime = &end
		resp.DisplayEndTime = uc.normalizer.TimeOnly(*exc.EndTime).String()
	}
	return resp
}
