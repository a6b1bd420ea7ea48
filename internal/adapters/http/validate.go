package web

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	tipoTag     = "tipo"
	fechaTag    = "fecha"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(tipoTag, tipoValidation)
	_ = validate.RegisterValidation(fechaTag, fechaValidation)

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, tipoTag, fechaTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomErrs)
	}
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case tipoTag:
		return "must be one of member, friend, visitor"
	case fechaTag:
		return "must be a date formatted as YYYY-MM-DD"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func tipoValidation(fl validator.FieldLevel) bool {
	_, err := person.ParseKind(fl.Field().String())
	return err == nil
}

func fechaValidation(fl validator.FieldLevel) bool {
	return period.ValidDate(fl.Field().String())
}
