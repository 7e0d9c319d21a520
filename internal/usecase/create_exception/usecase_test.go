package create_exception

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fixedClock часы, замороженные на заданном моменте
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// fakeExceptionRepo репозиторий исключений в памяти
type fakeExceptionRepo struct {
	stored     []*domain.ScheduleException
	nextID     int64
	failCreate bool
	failRead   bool
}

func (f *fakeExceptionRepo) Create(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	if f.failCreate {
		return nil, errors.New("connection refused")
	}
	f.nextID++
	exc.ID = f.nextID
	exc.CreatedAt = time.Now()
	exc.UpdatedAt = exc.CreatedAt
	f.stored = append(f.stored, exc)
	return exc, nil
}

func (f *fakeExceptionRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderExceptionsFilter) ([]*domain.ScheduleException, error) {
	if f.failRead {
		return nil, errors.New("connection refused")
	}
	out := make([]*domain.ScheduleException, 0)
	for _, exc := range f.stored {
		if exc.ProviderID != filter.ProviderID {
			continue
		}
		if filter.StartDate != nil && exc.AnchorDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && exc.AnchorDate.After(*filter.EndDate) {
			continue
		}
		if filter.OnlyBlocking && exc.IsAvailable {
			continue
		}
		out = append(out, exc)
	}
	return out, nil
}

// fakeResolver резолвер лимитов с фиксированным ответом
type fakeResolver struct {
	rule  *domain.LimitRule
	err   error
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, providerID int64, category domain.ExceptionCategory) (*domain.LimitRule, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rule, nil
}

// passTxManager выполняет функцию без реальной транзакции
type passTxManager struct{}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Тестовый момент: 18:00 UTC = 15:00 в Сан-Паулу, дата 10.03.2025
var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func newTestNormalizer(t *testing.T) *timeops.Normalizer {
	t.Helper()
	n, err := timeops.NewNormalizer("America/Sao_Paulo", fixedClock{t: testNow})
	require.NoError(t, err)
	return n
}

func newTestUseCase(t *testing.T, repo *fakeExceptionRepo, resolver *fakeResolver) *UseCase {
	t.Helper()
	return NewUseCase(repo, resolver, passTxManager{}, newTestNormalizer(t), nopLogger{})
}

// seedBlockingException добавляет в репозиторий блокирующее исключение
// на сегодня с заданной причиной и длительностью
func seedBlockingException(t *testing.T, repo *fakeExceptionRepo, n *timeops.Normalizer, providerID int64, reason string, start, end types.TimeString) {
	t.Helper()
	anchor := n.Today()
	startAt, err := n.Combine(anchor, start)
	require.NoError(t, err)
	endAt, err := n.Combine(anchor, end)
	require.NoError(t, err)
	repo.nextID++
	repo.stored = append(repo.stored, &domain.ScheduleException{
		ID:         repo.nextID,
		ProviderID: providerID,
		Kind:       domain.KindPunctual,
		Reason:     reason,
		AnchorDate: anchor,
		StartTime:  &startAt,
		EndTime:    &endAt,
	})
}

func globalAnyRule(minutes int) *domain.LimitRule {
	return &domain.LimitRule{
		ID:                 1,
		Category:           domain.CategoryAny,
		DailyBudgetMinutes: minutes,
		Active:             true,
	}
}

// Без настроенных правил любое валидное исключение принимается
func TestExecute_NoRulesConfigured(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{err: limits.ErrNoRuleConfigured}
	uc := newTestUseCase(t, repo, resolver)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindRecurring,
		Reason:     "Reunião semanal",
		StartTime:  "09:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "meeting", resp.Category)
	assert.Len(t, repo.stored, 1)
}

// Запрос в пределах лимита принимается
func TestExecute_WithinLimit(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(60)}
	uc := newTestUseCase(t, repo, resolver)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Almoço",
		AnchorDate: testNow,
		StartTime:  "12:00",
		EndTime:    "12:45",
	})
	require.NoError(t, err)
	assert.Equal(t, "lunch", resp.Category)
	assert.Equal(t, "10/03/2025", resp.DisplayDate)
	assert.Equal(t, "12:00", resp.DisplayStartTime)
	assert.Equal(t, "12:45", resp.DisplayEndTime)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, time.UTC, resp.StartTime.Location())
	assert.Len(t, repo.stored, 1)
}

// Запрос сверх остатка лимита отклоняется со всеми цифрами решения
func TestExecute_LimitExceeded(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(60)}
	uc := newTestUseCase(t, repo, resolver)
	seedBlockingException(t, repo, newTestNormalizer(t), 7, "Almoço", "12:00", "12:45")

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Pausa para almoço",
		AnchorDate: testNow,
		StartTime:  "15:00",
		EndTime:    "15:30",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimitExceeded)

	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 60, limitErr.BudgetMinutes)
	assert.Equal(t, 45, limitErr.UsedMinutes)
	assert.Equal(t, 30, limitErr.RequestedMinutes)
	assert.Equal(t, 15, limitErr.RemainingMinutes)
	assert.True(t, limitErr.GlobalRule)

	// Отказ не оставляет побочных эффектов
	assert.Len(t, repo.stored, 1)
}

// Остаток лимита никогда не уходит в минус
func TestExecute_RemainingFlooredAtZero(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(60)}
	uc := newTestUseCase(t, repo, resolver)
	n := newTestNormalizer(t)
	seedBlockingException(t, repo, n, 7, "Almoço", "12:00", "12:45")
	seedBlockingException(t, repo, n, 7, "Pausa", "15:00", "15:30")

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Intervalo",
		AnchorDate: testNow,
		StartTime:  "17:00",
		EndTime:    "17:10",
	})
	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 75, limitErr.UsedMinutes)
	assert.Equal(t, 0, limitErr.RemainingMinutes)
}

// Полнодневный блок не имеет длительности в минутах и лимитом не контролируется
func TestExecute_RangeBlockBypassesBudget(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(1)}
	uc := newTestUseCase(t, repo, resolver)

	end := testNow.AddDate(0, 0, 14)
	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID:   7,
		Kind:         domain.KindRangeBlock,
		Reason:       "Férias",
		AnchorDate:   testNow,
		RangeEndDate: &end,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.RangeEndDate)
	assert.Equal(t, 0, resolver.calls)
	assert.Len(t, repo.stored, 1)
}

// Граница лимита: ровно остаток проходит, остаток плюс минута - нет
func TestExecute_BudgetBoundary(t *testing.T) {
	makeRequest := func(end types.TimeString) *Request {
		return &Request{
			ProviderID: 7,
			Kind:       domain.KindPunctual,
			Reason:     "Almoço",
			AnchorDate: testNow,
			StartTime:  "12:00",
			EndTime:    end,
		}
	}

	t.Run("exactly remaining budget accepted", func(t *testing.T) {
		repo := &fakeExceptionRepo{}
		uc := newTestUseCase(t, repo, &fakeResolver{rule: globalAnyRule(60)})

		_, err := uc.Execute(context.Background(), makeRequest("13:00"))
		assert.NoError(t, err)
	})

	t.Run("one minute over rejected", func(t *testing.T) {
		repo := &fakeExceptionRepo{}
		uc := newTestUseCase(t, repo, &fakeResolver{rule: globalAnyRule(60)})

		_, err := uc.Execute(context.Background(), makeRequest("13:01"))
		assert.ErrorIs(t, err, ErrLimitExceeded)
	})
}

// Правило конкретной категории не видит занятость других категорий
func TestExecute_CategoryScopedUsage(t *testing.T) {
	repo := &fakeExceptionRepo{}
	rule := &domain.LimitRule{
		ID:                 1,
		Category:           domain.CategoryLunch,
		DailyBudgetMinutes: 60,
		Active:             true,
	}
	uc := newTestUseCase(t, repo, &fakeResolver{rule: rule})
	seedBlockingException(t, repo, newTestNormalizer(t), 7, "Reunião de equipe", "09:00", "11:00")

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Almoço",
		AnchorDate: testNow,
		StartTime:  "12:00",
		EndTime:    "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "lunch", resp.Category)
}

// Структурная валидация срабатывает до обращения к лимитам
func TestExecute_ValidationBeforeLimitCheck(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(60)}
	uc := newTestUseCase(t, repo, resolver)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindRecurring,
		Reason:     "Almoço",
		StartTime:  "13:00",
		EndTime:    "12:00",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, resolver.calls)
	assert.Empty(t, repo.stored)
}

// Переопределение доступности не участвует в лимитах
func TestExecute_AvailabilityOverrideSkipsEnforcement(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{rule: globalAnyRule(1)}
	uc := newTestUseCase(t, repo, resolver)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID:  7,
		Kind:        domain.KindPunctual,
		Reason:      "Plantão extra",
		AnchorDate:  testNow,
		StartTime:   "19:00",
		EndTime:     "22:00",
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resolver.calls)
	assert.Len(t, repo.stored, 1)
}

// Инфраструктурная ошибка разрешения лимита не блокирует запись (fail-open)
func TestExecute_FailOpenOnResolverError(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{err: errors.New("connection refused")}
	uc := newTestUseCase(t, repo, resolver)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Almoço",
		AnchorDate: testNow,
		StartTime:  "12:00",
		EndTime:    "13:00",
	})
	require.NoError(t, err)
	assert.Len(t, repo.stored, 1)
}

// Ошибка чтения занятого времени тоже не блокирует запись (fail-open)
func TestExecute_FailOpenOnAggregationError(t *testing.T) {
	repo := &fakeExceptionRepo{failRead: true}
	resolver := &fakeResolver{rule: globalAnyRule(1)}
	uc := newTestUseCase(t, repo, resolver)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Almoço",
		AnchorDate: testNow,
		StartTime:  "12:00",
		EndTime:    "13:00",
	})
	require.NoError(t, err)
	assert.Len(t, repo.stored, 1)
}

// Ошибка записи мапится в ErrPersistence без побочных эффектов
func TestExecute_PersistenceError(t *testing.T) {
	repo := &fakeExceptionRepo{failCreate: true}
	resolver := &fakeResolver{err: limits.ErrNoRuleConfigured}
	uc := newTestUseCase(t, repo, resolver)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindPunctual,
		Reason:     "Almoço",
		AnchorDate: testNow,
		StartTime:  "12:00",
		EndTime:    "13:00",
	})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, repo.stored)
}

// Для recurring без даты подставляется текущая дата операционной зоны
func TestExecute_RecurringDefaultsToToday(t *testing.T) {
	repo := &fakeExceptionRepo{}
	resolver := &fakeResolver{err: limits.ErrNoRuleConfigured}
	uc := newTestUseCase(t, repo, resolver)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		Kind:       domain.KindRecurring,
		Reason:     "Pausa diária",
		StartTime:  "15:00",
		EndTime:    "15:15",
	})
	require.NoError(t, err)
	assert.Equal(t, "10/03/2025", resp.DisplayDate)
}
