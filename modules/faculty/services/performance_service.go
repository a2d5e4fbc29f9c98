package services

import (
	"context"
	"strings"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

type PerformanceService struct {
	repo      performance.Repository
	publisher eventbus.EventBus
}

func NewPerformanceService(repo performance.Repository, publisher eventbus.EventBus) *PerformanceService {
	return &PerformanceService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PerformanceService) GetPaginated(ctx context.Context, params *performance.FindParams) ([]performance.Indicator, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]performance.Indicator, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *PerformanceService) Count(ctx context.Context, params *performance.FindParams) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx, params)
	})
}

func (s *PerformanceService) GetByID(ctx context.Context, id uint) (performance.Indicator, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (performance.Indicator, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

// Stats summarises one reporting year, or every year when year is zero.
func (s *PerformanceService) Stats(ctx context.Context, year int) (performance.Stats, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (performance.Stats, error) {
		return s.repo.Stats(txCtx, year)
	})
}

func (s *PerformanceService) Create(ctx context.Context, dto *performance.CreateDTO) (performance.Indicator, error) {
	if errs, ok := dto.Ok(); !ok {
		return performance.Indicator{}, serrors.ValidationErrors(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (performance.Indicator, error) {
		created, err := s.repo.Create(txCtx, dto.ToEntity())
		if err != nil {
			return performance.Indicator{}, err
		}
		s.publisher.Publish(performance.NewCreatedEvent(txCtx, created))
		return created, nil
	})
}

func (s *PerformanceService) Update(ctx context.Context, id uint, dto *performance.UpdateDTO) (performance.Indicator, error) {
	if errs, ok := dto.Ok(); !ok {
		return performance.Indicator{}, serrors.ValidationErrors(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (performance.Indicator, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return performance.Indicator{}, err
		}
		updated, err := s.repo.Update(txCtx, dto.Apply(existing))
		if err != nil {
			return performance.Indicator{}, err
		}
		s.publisher.Publish(performance.NewUpdatedEvent(txCtx, existing, updated))
		return updated, nil
	})
}

func (s *PerformanceService) Delete(ctx context.Context, id uint) (performance.Indicator, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (performance.Indicator, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return performance.Indicator{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return performance.Indicator{}, err
		}
		s.publisher.Publish(performance.NewDeletedEvent(txCtx, entity))
		return entity, nil
	})
}
