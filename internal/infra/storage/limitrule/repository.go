package limitrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var ruleColumns = []string{
	"id",
	"provider_id",
	"category",
	"daily_budget",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами дневных лимитов
//
// Колонка daily_budget хранит лимит в историческом строковом виде:
// либо "HH:MM:SS", либо свободный текст ("1 hour 30 minutes").
// Репозиторий нормализует оба формата в минуты при чтении - "сырая"
// строка выше этого слоя не поднимается
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил лимитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило лимита
// Лимит сохраняется в нормализованном clock-формате "HH:MM:SS"
func (r *Repository) Create(ctx context.Context, rule *domain.LimitRule) (*domain.LimitRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	budget := fmt.Sprintf("%02d:%02d:00", rule.DailyBudgetMinutes/60, rule.DailyBudgetMinutes%60)

	query, args, err := psqlbuilder.Insert("schedule_limit_rules").
		Columns(
			"provider_id",
			"category",
			"daily_budget",
			"active",
		).
		Values(
			rule.ProviderID,
			rule.Category,
			budget,
			rule.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// FindActive ищет активное правило для точной пары (providerID, category)
// providerID == nil означает глобальный уровень (provider_id IS NULL)
//
// Если несколько активных правил совпадают (некорректные данные),
// детерминированно выбирается последнее обновленное - тай-брейк задан
// на уровне запроса, а не порядком строк в хранилище
func (r *Repository) FindActive(ctx context.Context, providerID *int64, category domain.ExceptionCategory) (*domain.LimitRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("schedule_limit_rules").
		Where(squirrel.Eq{"category": category}).
		Where(squirrel.Eq{"active": true})

	// Фильтрация по provider_id (NULL или конкретное значение)
	if providerID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *providerID})
	}

	query, args, err := selectBuilder.
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}

	return rule, nil
}

// GetForProvider получает все правила, затрагивающие провайдера:
// его собственные плюс глобальные. Специфичные правила идут первыми
func (r *Repository) GetForProvider(ctx context.Context, providerID int64) ([]*domain.LimitRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_limit_rules").
		Where(squirrel.Or{
			squirrel.Eq{"provider_id": providerID},
			squirrel.Eq{"provider_id": nil},
		}).
		OrderBy("provider_id ASC NULLS LAST, category ASC, updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.LimitRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForProvider - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует строку и нормализует лимит в минуты
func scanRule(row rowScanner) (*domain.LimitRule, error) {
	var rule domain.LimitRule
	var providerID sql.NullInt64
	var rawBudget string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&providerID,
		&rule.Category,
		&rawBudget,
		&rule.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanRule - scan row: %v", ErrScanRow, err)
	}

	if providerID.Valid {
		rule.ProviderID = &providerID.Int64
	}

	minutes, err := types.ParseDurationMinutes(rawBudget)
	if err != nil {
		return nil, fmt.Errorf("%w: rule id=%d budget=%q: %v", ErrInvalidBudget, rule.ID, rawBudget, err)
	}
	rule.DailyBudgetMinutes = minutes

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
