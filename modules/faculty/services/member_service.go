package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

type MemberService struct {
	repo      member.Repository
	publisher eventbus.EventBus
}

func NewMemberService(repo member.Repository, publisher eventbus.EventBus) *MemberService {
	return &MemberService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *MemberService) GetPaginated(ctx context.Context, params *member.FindParams) ([]member.Member, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]member.Member, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *MemberService) Count(ctx context.Context, params *member.FindParams) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx, params)
	})
}

func (s *MemberService) GetByID(ctx context.Context, id uint) (member.Member, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (member.Member, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *MemberService) Stats(ctx context.Context) (member.Stats, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (member.Stats, error) {
		return s.repo.Stats(txCtx)
	})
}

// Create validates dto and stores a new member. Validation failures are
// returned as serrors.ValidationErrors; a member sharing the natural key
// the importer reconciles on yields member.ErrDuplicate.
func (s *MemberService) Create(ctx context.Context, dto *member.CreateDTO) (member.Member, error) {
	if errs, ok := dto.Ok(); !ok {
		return member.Member{}, serrors.ValidationErrors(errs)
	}
	entity, err := dto.ToEntity()
	if err != nil {
		return member.Member{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (member.Member, error) {
		existing, err := s.repo.GetByNaturalKey(txCtx, entity.Kind(), entity.NaturalKey())
		switch {
		case err == nil:
			return member.Member{}, errors.Wrapf(member.ErrDuplicate, "%s %s (id %d)", entity.Kind(), entity.NaturalKey(), existing.ID())
		case !errors.Is(err, member.ErrNotFound):
			return member.Member{}, err
		}
		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return member.Member{}, err
		}
		s.publisher.Publish(member.NewCreatedEvent(txCtx, created))
		return created, nil
	})
}

func (s *MemberService) Update(ctx context.Context, id uint, dto *member.UpdateDTO) (member.Member, error) {
	if errs, ok := dto.Ok(); !ok {
		return member.Member{}, serrors.ValidationErrors(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (member.Member, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return member.Member{}, err
		}
		entity, err := dto.Apply(existing)
		if err != nil {
			return member.Member{}, err
		}
		updated, err := s.repo.Update(txCtx, entity)
		if err != nil {
			return member.Member{}, err
		}
		s.publisher.Publish(member.NewUpdatedEvent(txCtx, existing, updated))
		return updated, nil
	})
}

func (s *MemberService) Delete(ctx context.Context, id uint) (member.Member, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (member.Member, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return member.Member{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return member.Member{}, err
		}
		s.publisher.Publish(member.NewDeletedEvent(txCtx, entity))
		return entity, nil
	})
}
