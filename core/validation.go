package core

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
var (
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"
)

// InitValidators sets up the base validator: english error messages,
// JSON tag names for errors instead of Go struct names, and shared custom tags.
// Domain packages register their own tags on top via their InitValidators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)
}

// RegisterCustomTranslation registers an error message for a custom validation tag.
// A validator.RegisterTranslationsFunc is required for registering the translator,
// but it has already been registered as the default translation,
// so a noop func is passed to bypass this requirement.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	registerFn := func(ut.Translator) error { return nil }
	translateFn := func(_ ut.Translator, _ validator.FieldError) string { return text }
	_ = validate.RegisterTranslation(tag, translator, registerFn, translateFn)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}
