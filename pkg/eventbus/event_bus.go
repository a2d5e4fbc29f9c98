package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/pkg/serrors"
)

// EventBus dispatches events to subscribers whose function signature
// matches the published arguments.
type EventBus interface {
	Publish(args ...any)
	PublishE(args ...any) error
	Subscribe(handler any)
	Unsubscribe(handler any)
	SubscribersCount() int
}

var (
	ErrNoSubscribers        = serrors.NewError("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers", "")
	ErrInvalidHandlerReturn = serrors.NewError("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature", "")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type bus struct {
	log *logrus.Logger

	mu       sync.RWMutex
	handlers []reflect.Value
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &bus{log: log}
}

// MatchSignature reports whether handler can be called with args.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			if param.Kind() != reflect.Interface && param.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if param.Kind() == reflect.Interface {
			if !argType.Implements(param) {
				return false
			}
			continue
		}
		if !argType.AssignableTo(param) {
			return false
		}
	}
	return true
}

func (b *bus) snapshot() []reflect.Value {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]reflect.Value, len(b.handlers))
	copy(out, b.handlers)
	return out
}

func callArgs(handler reflect.Value, args []any) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(handler.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

// invoke calls handler and converts a panic or a returned error into err.
func invoke(handler reflect.Value, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("eventbus: handler %s panicked with args %v: %v", handler.Type(), args, r)
		}
	}()
	out := handler.Call(callArgs(handler, args))
	switch {
	case len(out) == 0:
		return nil
	case len(out) != 1:
		return fmt.Errorf("%w: handler %s returned %d values", ErrInvalidHandlerReturn, handler.Type(), len(out))
	case out[0].Type() != errorType:
		return fmt.Errorf("%w: handler %s return type is %s", ErrInvalidHandlerReturn, handler.Type(), out[0].Type())
	case out[0].IsNil():
		return nil
	default:
		return out[0].Interface().(error)
	}
}

// Publish delivers args to every matching subscriber. Handler failures are
// logged and never stop delivery to the remaining subscribers.
func (b *bus) Publish(args ...any) {
	delivered := false
	for _, h := range b.snapshot() {
		if !MatchSignature(h.Interface(), args) {
			continue
		}
		if err := invoke(h, args); err != nil {
			if b.log != nil {
				b.log.WithError(err).Error("eventbus: handler failed")
			}
			continue
		}
		delivered = true
	}
	if !delivered && b.log != nil {
		b.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

// PublishE is Publish returning every handler error joined.
func (b *bus) PublishE(args ...any) error {
	matched := false
	var errs []error
	for _, h := range b.snapshot() {
		if !MatchSignature(h.Interface(), args) {
			continue
		}
		matched = true
		if err := invoke(h, args); err != nil {
			errs = append(errs, err)
		}
	}
	if !matched {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

func (b *bus) Subscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		panic("handler must be a function")
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, v)
	b.mu.Unlock()
}

func (b *bus) Unsubscribe(handler any) {
	target := reflect.ValueOf(handler)
	if target.Kind() != reflect.Func {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, h := range b.handlers {
		if h.Pointer() == target.Pointer() {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return
		}
	}
}

func (b *bus) SubscribersCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
