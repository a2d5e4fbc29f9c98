package serrors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/fkunand/faculty-admin/pkg/constants"
	"github.com/fkunand/faculty-admin/pkg/intl"
)

// BaseError is an error carrying a stable machine-readable code and, when
// LocaleKey is set, a catalog message for the client.
type BaseError struct {
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	LocaleKey    string            `json:"locale_key,omitempty"`
	TemplateData map[string]string `json:"-"`
}

func (b *BaseError) Error() string {
	return b.Message
}

// Localize renders the catalog message, falling back to Message.
func (b *BaseError) Localize(l *i18n.Localizer) string {
	if b.LocaleKey == "" {
		return b.Message
	}
	data := make(map[string]any, len(b.TemplateData))
	for k, v := range b.TemplateData {
		data[k] = v
	}
	if msg := intl.T(l, b.LocaleKey, data); msg != b.LocaleKey {
		return msg
	}
	return b.Message
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{Code: code, Message: message, LocaleKey: localeKey}
}

// CodeOf returns the code of the first BaseError in err's chain.
func CodeOf(err error) string {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// ValidationErrors maps a json field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// ProcessValidatorErrors translates validator errors. fieldName maps a struct
// field to the key used in the result; an empty return keeps the lowercased
// struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors, fieldName func(string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		key := ""
		if fieldName != nil {
			key = fieldName(fe.Field())
		}
		if key == "" {
			key = strings.ToLower(fe.Field())
		}
		out[key] = fe.Translate(constants.Translator)
	}
	return out
}
