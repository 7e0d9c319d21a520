package limits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/limitrule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRuleRepo репозиторий правил в памяти
type fakeRuleRepo struct {
	rules   []*domain.LimitRule
	failAll bool
	nextID  int64
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *domain.LimitRule) (*domain.LimitRule, error) {
	if f.failAll {
		return nil, errors.New("storage down")
	}
	f.nextID++
	rule.ID = f.nextID
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeRuleRepo) FindActive(ctx context.Context, providerID *int64, category domain.ExceptionCategory) (*domain.LimitRule, error) {
	if f.failAll {
		return nil, errors.New("storage down")
	}
	var found *domain.LimitRule
	for _, rule := range f.rules {
		if !rule.Active || rule.Category != category {
			continue
		}
		if (providerID == nil) != (rule.ProviderID == nil) {
			continue
		}
		if providerID != nil && *rule.ProviderID != *providerID {
			continue
		}
		// Тай-брейк: последнее обновленное правило
		if found == nil || rule.UpdatedAt.After(found.UpdatedAt) {
			found = rule
		}
	}
	if found == nil {
		return nil, limitRepo.ErrRuleNotFound
	}
	return found, nil
}

func (f *fakeRuleRepo) GetForProvider(ctx context.Context, providerID int64) ([]*domain.LimitRule, error) {
	if f.failAll {
		return nil, errors.New("storage down")
	}
	out := make([]*domain.LimitRule, 0)
	for _, rule := range f.rules {
		if rule.ProviderID == nil || *rule.ProviderID == providerID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func newRule(id int64, providerID *int64, category domain.ExceptionCategory, minutes int, updatedAt time.Time) *domain.LimitRule {
	return &domain.LimitRule{
		ID:                 id,
		ProviderID:         providerID,
		Category:           category,
		DailyBudgetMinutes: minutes,
		Active:             true,
		UpdatedAt:          updatedAt,
	}
}

// Специфичное правило провайдера бьет глобальное: при глобальном any=60
// и провайдерском lunch=30 запрос lunch разрешается в 30-минутное правило
func TestResolve_ProviderSpecificBeatsGlobal(t *testing.T) {
	now := time.Now()
	repo := &fakeRuleRepo{rules: []*domain.LimitRule{
		newRule(1, nil, domain.CategoryAny, 60, now),
		newRule(2, ptr.Ptr(int64(7)), domain.CategoryLunch, 30, now),
	}}
	svc := NewService(repo, nopLogger{})

	rule, err := svc.Resolve(context.Background(), 7, domain.CategoryLunch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rule.ID)
	assert.Equal(t, 30, rule.DailyBudgetMinutes)
}

func TestResolve_FallbackOrder(t *testing.T) {
	now := time.Now()
	providerID := int64(7)

	tests := []struct {
		name     string
		rules    []*domain.LimitRule
		expected int64
	}{
		{
			name: "provider wildcard beats global specific",
			rules: []*domain.LimitRule{
				newRule(1, nil, domain.CategoryLunch, 60, now),
				newRule(2, ptr.Ptr(providerID), domain.CategoryAny, 45, now),
			},
			expected: 2,
		},
		{
			name: "global specific beats global wildcard",
			rules: []*domain.LimitRule{
				newRule(1, nil, domain.CategoryAny, 60, now),
				newRule(2, nil, domain.CategoryLunch, 30, now),
			},
			expected: 2,
		},
		{
			name: "global wildcard as last resort",
			rules: []*domain.LimitRule{
				newRule(1, nil, domain.CategoryAny, 60, now),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRuleRepo{rules: tt.rules}, nopLogger{})
			rule, err := svc.Resolve(context.Background(), providerID, domain.CategoryLunch)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rule.ID)
		})
	}
}

func TestResolve_NoRuleConfigured(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, nopLogger{})

	_, err := svc.Resolve(context.Background(), 7, domain.CategoryLunch)
	assert.ErrorIs(t, err, ErrNoRuleConfigured)
}

// Неактивные правила в разрешении не участвуют
func TestResolve_IgnoresInactiveRules(t *testing.T) {
	inactive := newRule(1, nil, domain.CategoryLunch, 30, time.Now())
	inactive.Active = false
	svc := NewService(&fakeRuleRepo{rules: []*domain.LimitRule{inactive}}, nopLogger{})

	_, err := svc.Resolve(context.Background(), 7, domain.CategoryLunch)
	assert.ErrorIs(t, err, ErrNoRuleConfigured)
}

// Дубликаты разрешаются детерминированно: выигрывает последнее обновленное
func TestResolve_TieBreakMostRecentlyUpdated(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRuleRepo{rules: []*domain.LimitRule{
		newRule(1, nil, domain.CategoryLunch, 30, old),
		newRule(2, nil, domain.CategoryLunch, 90, recent),
	}}
	svc := NewService(repo, nopLogger{})

	rule, err := svc.Resolve(context.Background(), 7, domain.CategoryLunch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rule.ID)
}

func TestResolve_InfrastructureFailure(t *testing.T) {
	svc := NewService(&fakeRuleRepo{failAll: true}, nopLogger{})

	_, err := svc.Resolve(context.Background(), 7, domain.CategoryLunch)
	assert.ErrorIs(t, err, ErrResolutionFailed)
}

func TestCreateRule(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, nopLogger{})

	resp, err := svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		Category:    "lunch",
		DailyBudget: "1 hour 30 minutes",
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DailyBudgetMinutes)
	assert.Equal(t, "1h30min", resp.DailyBudgetLabel)
	assert.True(t, resp.Global)
}

func TestCreateRule_ClockFormat(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, nopLogger{})

	resp, err := svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		ProviderID:  ptr.Ptr(int64(7)),
		Category:    "any",
		DailyBudget: "01:00:00",
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DailyBudgetMinutes)
	assert.False(t, resp.Global)
}

func TestCreateRule_InvalidInput(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, nopLogger{})

	_, err := svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		Category:    "party",
		DailyBudget: "01:00:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		Category:    "lunch",
		DailyBudget: "a lot of time",
	})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}
