package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type localizerKey struct{}

type localeKey struct{}

var ErrNoLocalizer = errors.New("localizer not found in context")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	return l, ok && l != nil
}

// LocalizerFrom returns the request localizer, or Default outside a request.
func LocalizerFrom(ctx context.Context) *i18n.Localizer {
	if l, ok := UseLocalizer(ctx); ok {
		return l
	}
	return Default()
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey{}).(language.Tag)
	return tag, ok
}
