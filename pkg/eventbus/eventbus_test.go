package eventbus

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/pkg/logging"
)

type importedEvent struct {
	kind     string
	inserted int
}

type deletedEvent struct {
	id int
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublish_NoMatchingSubscriber(t *testing.T) {
	log, buf := bufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *deletedEvent) {
		t.Error("should not be called")
	})

	publisher.Publish(&importedEvent{kind: "lecturer"})

	assert.Contains(t, buf.String(), "eventbus.Publish: no matching subscribers")
}

func TestPublish_DeliversToMatchingSubscriber(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var got *importedEvent
	publisher.Subscribe(func(e *importedEvent) {
		got = e
	})

	publisher.Publish(&importedEvent{kind: "staff", inserted: 3})

	require.NotNil(t, got)
	assert.Equal(t, "staff", got.kind)
	assert.Equal(t, 3, got.inserted)
}

func TestPublish_ContextAndEvent(t *testing.T) {
	publisher := NewEventPublisher(nil)
	called := false
	publisher.Subscribe(func(ctx context.Context, e *importedEvent) {
		called = ctx != nil && e.kind == "lecturer"
	})

	publisher.Publish(context.Background(), &importedEvent{kind: "lecturer"})

	assert.True(t, called)
}

func TestMatchSignature(t *testing.T) {
	assert.True(t, MatchSignature(func(e *importedEvent) {}, []any{&importedEvent{}}))
	assert.False(t, MatchSignature(func(e *importedEvent) {}, []any{&deletedEvent{}}))
	assert.False(t, MatchSignature(func(e *importedEvent) {}, []any{}))
	assert.False(t, MatchSignature(func(e *importedEvent) {}, []any{&importedEvent{}, &importedEvent{}}))
	assert.True(t, MatchSignature(func(ctx context.Context) {}, []any{context.Background()}))
	assert.True(t, MatchSignature(func(e *importedEvent) {}, []any{nil}))
	assert.False(t, MatchSignature("not a func", []any{}))
}

func TestPublish_PanicRecovery(t *testing.T) {
	t.Parallel()

	t.Run("panic is logged and other handlers still run", func(t *testing.T) {
		log, buf := bufferedLogger(logrus.WarnLevel)
		publisher := NewEventPublisher(log)

		first, third := false, false
		publisher.Subscribe(func(e *importedEvent) { first = true })
		publisher.Subscribe(func(e *importedEvent) { panic("handler 2 panic") })
		publisher.Subscribe(func(e *importedEvent) { third = true })

		publisher.Publish(&importedEvent{kind: "lecturer"})

		assert.True(t, first)
		assert.True(t, third)
		assert.Contains(t, buf.String(), "panicked")
		assert.Contains(t, buf.String(), "handler 2 panic")
		assert.NotContains(t, buf.String(), "no matching subscribers")
	})

	t.Run("all handlers panicking is reported as undelivered", func(t *testing.T) {
		log, buf := bufferedLogger(logrus.WarnLevel)
		publisher := NewEventPublisher(log)
		publisher.Subscribe(func(e *importedEvent) { panic("always panics") })

		publisher.Publish(&importedEvent{})

		assert.Contains(t, buf.String(), "no matching subscribers")
	})
}

func TestPublishE(t *testing.T) {
	t.Parallel()

	t.Run("no subscribers", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		err := publisher.PublishE(&importedEvent{})
		require.ErrorIs(t, err, ErrNoSubscribers)
	})

	t.Run("joins handler errors", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		err1 := errors.New("err1")
		err2 := errors.New("err2")
		publisher.Subscribe(func(e *importedEvent) error { return err1 })
		publisher.Subscribe(func(e *importedEvent) error { return err2 })

		err := publisher.PublishE(&importedEvent{})
		require.ErrorIs(t, err, err1)
		require.ErrorIs(t, err, err2)
	})

	t.Run("panic surfaces as error", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		called := false
		publisher.Subscribe(func(e *importedEvent) error { panic("boom") })
		publisher.Subscribe(func(e *importedEvent) error { called = true; return nil })

		require.Error(t, publisher.PublishE(&importedEvent{}))
		assert.True(t, called)
	})

	t.Run("invalid return signature", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		publisher.Subscribe(func(e *importedEvent) int { return 1 })

		require.ErrorIs(t, publisher.PublishE(&importedEvent{}), ErrInvalidHandlerReturn)
	})
}

func TestUnsubscribe(t *testing.T) {
	publisher := NewEventPublisher(nil)
	handler := func(e *deletedEvent) {}
	publisher.Subscribe(handler)
	publisher.Subscribe(func(e *importedEvent) {})
	require.Equal(t, 2, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())
}
