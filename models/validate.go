// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"

	"github.com/danielhkuo/decidebox/categories"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	// Field names in messages come from the label tag, then json
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	trans, _ = uni.GetTranslator("ja")
	_ = jaTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("category", validateCategory)
	_ = validate.RegisterValidation("uniqueci", validateUniqueFold)

	registerTranslation("category", "{0}が正しくありません")
	registerTranslation("uniqueci", "重複する{0}があります")
}

// validateCategory accepts any registered category except the "all" filter
func validateCategory(fl validator.FieldLevel) bool {
	id := categories.ID(fl.Field().Int())
	return id != categories.All && categories.Valid(id)
}

// validateUniqueFold rejects string slices with entries equal after
// trimming and lowercasing
func validateUniqueFold(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	seen := make(map[string]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		key := strings.ToLower(strings.TrimSpace(field.Index(i).String()))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Validate checks v against its validate struct tags
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// FieldErrors unwraps validation failures; nil if err is not one
func FieldErrors(err error) validator.ValidationErrors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

// Translate renders a single field error in Japanese
func Translate(fe validator.FieldError) string {
	return fe.Translate(trans)
}

// TranslateError renders every field error in err in Japanese.
// Errors that are not validation failures are returned as-is.
func TranslateError(err error) []string {
	if err == nil {
		return nil
	}
	verrs := FieldErrors(err)
	if verrs == nil {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}
