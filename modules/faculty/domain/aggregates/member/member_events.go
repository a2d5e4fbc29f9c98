package member

import (
	"context"

	"github.com/fkunand/faculty-admin/pkg/composables"
)

type CreatedEvent struct {
	Actor  string
	Result Member
}

type UpdatedEvent struct {
	Actor  string
	Old    Member
	Result Member
}

type DeletedEvent struct {
	Actor  string
	Result Member
}

func NewCreatedEvent(ctx context.Context, result Member) CreatedEvent {
	return CreatedEvent{Actor: composables.UseActor(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, old, result Member) UpdatedEvent {
	return UpdatedEvent{Actor: composables.UseActor(ctx), Old: old, Result: result}
}

func NewDeletedEvent(ctx context.Context, result Member) DeletedEvent {
	return DeletedEvent{Actor: composables.UseActor(ctx), Result: result}
}
