// Package bind decodes and validates JSON request bodies. Failures come
// back as perr errors carrying the offending field so the envelope can
// point the dashboard client at it.
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "salesboard/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps request bodies; a full station list is far below it
const MaxBody = 1 << 20

type validatorSvc struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	svc  validatorSvc
)

// messages replace the stock english ones for the tags request DTOs use
var messages = map[string]string{
	"required": "{0} is required",
	"max":      "{0} must be at most {1}",
	"min":      "{0} must be at least {1}",
	"datetime": "{0} must be a date like 2024-01-31",
}

func get() validatorSvc {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(v, trans)
		for tag, text := range messages {
			_ = v.RegisterTranslation(tag, trans,
				func(t ut.Translator) error { return t.Add(tag, text, true) },
				func(t ut.Translator, fe validator.FieldError) string {
					msg, _ := t.T(fe.Tag(), fieldPath(fe), fe.Param())
					return msg
				},
			)
		}
		svc = validatorSvc{v: v, trans: trans}
	})
	return svc
}

// ParseJSON decodes the body into T, rejecting unknown fields and trailing
// data, then runs the validate tags
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	if r.Body == nil {
		return dst, perr.JSONErrf("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, decodeError(err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected data after the JSON body")
	}
	return dst, Validate(dst)
}

// Validate runs the validate tags on v
func Validate(v any) error {
	s := get()
	err := s.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(s.trans)), fieldPath(fe))
}

// fieldPath is the json path below the root struct, e.g. "trend_window.start"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return perr.WithField(perr.JSONErrf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()), typeErr.Field)
	}
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		name = strings.Trim(name, `"`)
		return perr.WithField(perr.JSONErrf("unknown field %s", name), name)
	}
	return perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON")
}
