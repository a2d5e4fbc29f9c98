package composables

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/pkg/constants"
)

var (
	ErrNoLogger    = errors.New("logger not found")
	ErrNoPrincipal = errors.New("principal not found")
)

type Params struct {
	IP        string
	UserAgent string
	RequestID string
	Request   *http.Request
	Writer    http.ResponseWriter
}

// Principal is the identity established by the credential check.
type Principal struct {
	Username string
	Method   string
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger.
// Outside of a request a standard logger entry is returned.
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// UseIP returns the IP address from the context.
// If the IP address is not found, the second return value will be false.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

// UseUserAgent returns the user agent from the context.
// If the user agent is not found, the second return value will be false.
func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, constants.PrincipalKey, p)
}

func UsePrincipal(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(constants.PrincipalKey).(Principal)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}

const systemActor = "system"

// UseActor names the authenticated principal of ctx, or "system".
func UseActor(ctx context.Context) string {
	p, err := UsePrincipal(ctx)
	if err != nil || p.Username == "" {
		return systemActor
	}
	return p.Username
}

// UseQuery decodes the query string into v.
func UseQuery[T any](v T, r *http.Request) (T, error) {
	return v, constants.Decoder.Decode(v, r.URL.Query())
}
