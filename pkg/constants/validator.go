package constants

import (
	"reflect"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   = validator.New(validator.WithRequiredStructEnabled())
	Decoder    = form.NewDecoder()
	Translator ut.Translator
)

func init() {
	// Report json names so API clients can map errors to their payload keys.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	Translator, _ = uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(Validate, Translator); err != nil {
		panic(err)
	}
}
