package exception

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var exceptionColumns = []string{
	"id",
	"provider_id",
	"kind",
	"reason",
	"anchor_date",
	"range_end_date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с исключениями расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое исключение расписания
// Если в контексте передана активная транзакция (через context.Value), использует её
// Транзакция нужна при создании с проверкой дневного лимита - агрегация
// занятого времени и вставка должны видеть согласованное состояние
func (r *Repository) Create(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"provider_id",
			"kind",
			"reason",
			"anchor_date",
			"range_end_date",
			"start_time",
			"end_time",
			"is_available",
		).
		Values(
			exc.ProviderID,
			exc.Kind,
			exc.Reason,
			exc.AnchorDate,
			exc.RangeEndDate,
			exc.StartTime,
			exc.EndTime,
			exc.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// GetByID получает исключение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetByProviderWithFilter получает исключения провайдера с фильтрацией
// Поддерживает фильтрацию по:
// - Периоду по anchor_date (StartDate, EndDate) - опционально
// - Только блокирующим записям (OnlyBlocking)
//
// Для выборки без периода сортирует по времени создания (DESC - сначала новые),
// для выборки за конкретный день - по времени начала (ASC)
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderExceptionsFilter) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"anchor_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"anchor_date": *filter.EndDate})
	}

	// Только блокирующие записи (для учета дневного лимита)
	if filter.OnlyBlocking {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": false})
	}

	// Определяем сортировку в зависимости от фильтра
	// Выборка за один календарный день: границы периода приходят как
	// [00:00, 23:59:59] одних суток
	sameDay := filter.StartDate != nil && filter.EndDate != nil &&
		filter.StartDate.Format(domain.DateFormat) == filter.EndDate.Format(domain.DateFormat)
	if sameDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC NULLS FIRST")
	} else {
		selectBuilder = selectBuilder.OrderBy("created_at DESC")
	}

	// Внутри транзакции блокируем строки дня (для usecase создания с лимитом)
	if dbmetrics.IsInTransaction(ctx) && sameDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanExceptions(rows)
}

// Delete удаляет исключение (физическое удаление)
// Редактор расписания в клиентском приложении удаляет записи напрямую
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanException сканирует одну строку в доменную модель
func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var exc domain.ScheduleException
	var rangeEndDate, startTime, endTime, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.ProviderID,
		&exc.Kind,
		&exc.Reason,
		&exc.AnchorDate,
		&rangeEndDate,
		&startTime,
		&endTime,
		&exc.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rangeEndDate.Valid {
		exc.RangeEndDate = &rangeEndDate.Time
	}
	if startTime.Valid {
		exc.StartTime = &startTime.Time
	}
	if endTime.Valid {
		exc.EndTime = &endTime.Time
	}
	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

// scanExceptions сканирует результаты запроса в слайс исключений
func (r *Repository) scanExceptions(rows *sql.Rows) ([]*domain.ScheduleException, error) {
	exceptions := make([]*domain.ScheduleException, 0)

	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanExceptions - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}
