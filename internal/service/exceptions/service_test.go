package exceptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeExceptionRepo репозиторий исключений в памяти
type fakeExceptionRepo struct {
	stored  []*domain.ScheduleException
	readErr error
}

func (f *fakeExceptionRepo) GetByID(ctx context.Context, id int64) (*domain.ScheduleException, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	for _, exc := range f.stored {
		if exc.ID == id {
			return exc, nil
		}
	}
	return nil, exceptionRepo.ErrExceptionNotFound
}

func (f *fakeExceptionRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderExceptionsFilter) ([]*domain.ScheduleException, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]*domain.ScheduleException, 0)
	for _, exc := range f.stored {
		if exc.ProviderID == filter.ProviderID {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (f *fakeExceptionRepo) Delete(ctx context.Context, id int64) error {
	for i, exc := range f.stored {
		if exc.ID == id {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			return nil
		}
	}
	return exceptionRepo.ErrExceptionNotFound
}

func newTestService(t *testing.T, repo *fakeExceptionRepo) *Service {
	t.Helper()
	n, err := timeops.NewNormalizer("America/Sao_Paulo", nil)
	require.NoError(t, err)
	return NewService(repo, n, nopLogger{})
}

func TestGetProviderExceptions(t *testing.T) {
	// 15:00 UTC = 12:00 в Сан-Паулу
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	repo := &fakeExceptionRepo{stored: []*domain.ScheduleException{
		{
			ID:         1,
			ProviderID: 7,
			Kind:       domain.KindPunctual,
			Reason:     "Almoço",
			AnchorDate: time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC),
			StartTime:  &start,
			EndTime:    &end,
		},
		{ID: 2, ProviderID: 9, Kind: domain.KindRangeBlock, Reason: "Férias",
			AnchorDate: time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)},
	}}
	svc := newTestService(t, repo)

	resp, err := svc.GetProviderExceptions(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "lunch", resp[0].Category)
	assert.Equal(t, "10/03/2025", resp[0].DisplayDate)
	assert.Equal(t, "12:00", resp[0].DisplayStartTime)
	assert.Equal(t, "12:45", resp[0].DisplayEndTime)
	require.NotNil(t, resp[0].StartTime)
	assert.Equal(t, time.UTC, resp[0].StartTime.Location())
}

func TestGetProviderExceptions_InvalidProvider(t *testing.T) {
	svc := newTestService(t, &fakeExceptionRepo{})

	_, err := svc.GetProviderExceptions(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProviderExceptions_RepositoryError(t *testing.T) {
	svc := newTestService(t, &fakeExceptionRepo{readErr: errors.New("connection refused")})

	_, err := svc.GetProviderExceptions(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID(t *testing.T) {
	repo := &fakeExceptionRepo{stored: []*domain.ScheduleException{
		{ID: 1, ProviderID: 7, Kind: domain.KindRangeBlock, Reason: "Férias",
			AnchorDate: time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)},
	}}
	svc := newTestService(t, repo)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "other", resp.Category)
	assert.Equal(t, "01/04/2025", resp.DisplayDate)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(t, &fakeExceptionRepo{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrExceptionNotFound)
}

func TestDelete(t *testing.T) {
	repo := &fakeExceptionRepo{stored: []*domain.ScheduleException{
		{ID: 1, ProviderID: 7, Kind: domain.KindPunctual, Reason: "Almoço"},
	}}
	svc := newTestService(t, repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.stored)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(t, &fakeExceptionRepo{})

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrExceptionNotFound)
}
