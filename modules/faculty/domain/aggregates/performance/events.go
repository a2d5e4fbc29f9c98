package performance

import (
	"context"

	"github.com/fkunand/faculty-admin/pkg/composables"
)

type CreatedEvent struct {
	Actor  string
	Result Indicator
}

type UpdatedEvent struct {
	Actor  string
	Old    Indicator
	Result Indicator
}

type DeletedEvent struct {
	Actor  string
	Result Indicator
}

func NewCreatedEvent(ctx context.Context, result Indicator) CreatedEvent {
	return CreatedEvent{Actor: composables.UseActor(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, old, result Indicator) UpdatedEvent {
	return UpdatedEvent{Actor: composables.UseActor(ctx), Old: old, Result: result}
}

func NewDeletedEvent(ctx context.Context, result Indicator) DeletedEvent {
	return DeletedEvent{Actor: composables.UseActor(ctx), Result: result}
}
