package exceptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	"github.com/m04kA/SMC-ScheduleService/internal/service/exceptions/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
)

// Service сервис чтения и удаления исключений расписания
// Создание идет через usecase create_exception (там живет контроль лимитов)
type Service struct {
	exceptionRepo ExceptionRepository
	normalizer    *timeops.Normalizer
	logger        Logger
}

// NewService создает новый экземпляр сервиса исключений
func NewService(exceptionRepo ExceptionRepository, normalizer *timeops.Normalizer, logger Logger) *Service {
	return &Service{
		exceptionRepo: exceptionRepo,
		normalizer:    normalizer,
		logger:        logger,
	}
}

// GetByID получает исключение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ExceptionResponse, error) {
	s.logger.Info("GetByID: fetching exception id=%d", id)

	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("GetByID: exception id=%d not found", id)
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("GetByID: repository error for exception id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched exception id=%d", id)
	return models.FromDomainException(exc, s.normalizer), nil
}

// GetProviderExceptions получает все исключения провайдера,
// отсортированные по времени создания (сначала новые)
func (s *Service) GetProviderExceptions(ctx context.Context, providerID int64) ([]*models.ExceptionResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetProviderExceptions: fetching exceptions for provider=%d", providerID)

	exceptions, err := s.exceptionRepo.GetByProviderWithFilter(ctx, domain.ProviderExceptionsFilter{
		ProviderID: providerID,
	})
	if err != nil {
		s.logger.Error("GetProviderExceptions: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderExceptions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderExceptions: fetched %d exceptions for provider=%d", len(exceptions), providerID)
	return models.FromDomainExceptionList(exceptions, s.normalizer), nil
}

// Delete удаляет исключение по ID
// Простая CRUD-операция вне конвейера допуска; лимиты задним числом
// не пересматриваются
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting exception id=%d", id)

	if err := s.exceptionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("Delete: exception id=%d not found", id)
			return ErrExceptionNotFound
		}
		s.logger.Error("Delete: repository error for exception id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted exception id=%d", id)
	return nil
}
