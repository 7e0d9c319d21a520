package limits

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/limitrule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/limits/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Service сервис разрешения и администрирования правил дневных лимитов
type Service struct {
	ruleRepo LimitRuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса лимитов
func NewService(ruleRepo LimitRuleRepository, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// lookupTier один уровень поиска правила: пара (область, категория)
type lookupTier struct {
	name       string
	providerID *int64 // nil = глобальный уровень
	category   domain.ExceptionCategory
}

// resolutionTiers строит упорядоченную цепочку уровней поиска:
//  1. правило провайдера для конкретной категории
//  2. правило провайдера для любой категории (any)
//  3. глобальное правило для конкретной категории
//  4. глобальное правило для любой категории (any)
//
// Порядок - первоклассный артефакт: специфичное бьет глобальное,
// конкретная категория бьет wildcard
func resolutionTiers(providerID int64, category domain.ExceptionCategory) []lookupTier {
	tiers := []lookupTier{
		{name: "provider+category", providerID: &providerID, category: category},
	}
	if category != domain.CategoryAny {
		tiers = append(tiers, lookupTier{name: "provider+any", providerID: &providerID, category: domain.CategoryAny})
	}
	tiers = append(tiers, lookupTier{name: "global+category", providerID: nil, category: category})
	if category != domain.CategoryAny {
		tiers = append(tiers, lookupTier{name: "global+any", providerID: nil, category: domain.CategoryAny})
	}
	return tiers
}

// Resolve находит действующее правило лимита для пары (провайдер, категория)
// Возвращает ErrNoRuleConfigured, если правило не настроено ни на одном уровне,
// и ErrResolutionFailed при инфраструктурной ошибке чтения
func (s *Service) Resolve(ctx context.Context, providerID int64, category domain.ExceptionCategory) (*domain.LimitRule, error) {
	for _, tier := range resolutionTiers(providerID, category) {
		rule, err := s.ruleRepo.FindActive(ctx, tier.providerID, tier.category)
		if err == nil {
			s.logger.Info("Resolve: matched tier=%s rule id=%d for provider=%d category=%s",
				tier.name, rule.ID, providerID, category)
			return rule, nil
		}
		if errors.Is(err, limitRepo.ErrRuleNotFound) {
			continue
		}
		s.logger.Error("Resolve: tier=%s lookup failed for provider=%d category=%s: %v",
			tier.name, providerID, category, err)
		return nil, fmt.Errorf("%w: tier %s: %v", ErrResolutionFailed, tier.name, err)
	}

	return nil, ErrNoRuleConfigured
}

// CreateRule создает правило лимита (административная операция)
// Лимит принимается в любом из исторических форматов и нормализуется в минуты
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	category := domain.ExceptionCategory(req.Category)
	if !category.IsValidRuleCategory() {
		s.logger.Warn("CreateRule: invalid category %q", req.Category)
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	minutes, err := types.ParseDurationMinutes(req.DailyBudget)
	if err != nil {
		s.logger.Warn("CreateRule: unparseable budget %q: %v", req.DailyBudget, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidBudget, req.DailyBudget)
	}
	if minutes < domain.MinDailyBudgetMinutes || minutes > domain.MaxDailyBudgetMinutes {
		return nil, fmt.Errorf("%w: budget must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDailyBudgetMinutes, domain.MaxDailyBudgetMinutes)
	}

	rule := &domain.LimitRule{
		ProviderID:         req.ProviderID,
		Category:           category,
		DailyBudgetMinutes: minutes,
		Active:             req.Active,
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: failed to create rule: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%d category=%s budget=%dmin global=%t",
		created.ID, created.Category, created.DailyBudgetMinutes, created.IsGlobal())
	return models.FromDomainRule(created), nil
}

// GetProviderRules получает правила, действующие для провайдера
// (его собственные плюс глобальные)
func (s *Service) GetProviderRules(ctx context.Context, providerID int64) ([]*models.RuleResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.GetForProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProviderRules: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderRules: fetched %d rules for provider=%d", len(rules), providerID)
	return models.FromDomainRuleList(rules), nil
}
