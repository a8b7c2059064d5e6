// Package validate checks request payloads against the `validate` struct
// tags declared in package types and turns failures into a field → messages
// map that handlers can send back as-is.
//
// One validator instance is built at package init and shared; it is safe
// for concurrent use once configured.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	v     *validator.Validate
	trans ut.Translator
)

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("firstName") rather than the Go
	// field name ("FirstName") so messages match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("validate: register translations: %v", err))
	}
}

// Errors is a structured validation failure: for every offending field,
// the list of reasons it was rejected.
type Errors struct {
	Fields map[string][]string
}

// Error renders the failures in a stable (sorted by field) order.
func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Errors) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge adds the failures of other for every field e does not already
// report, so one field never carries both a type and a required message.
func (e *Errors) Merge(other *Errors) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		if _, ok := e.Fields[field]; ok {
			continue
		}
		for _, msg := range msgs {
			e.add(field, msg)
		}
	}
}

// Struct validates s against its `validate` tags.
// It returns nil when s is valid and *Errors otherwise. Any other error
// (for example s not being a struct) is returned unchanged.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &Errors{}
	for _, fe := range ve {
		out.add(fe.Field(), fe.Translate(trans))
	}
	return out
}

// FromDecodeError converts a JSON type mismatch, such as
// {"enrolled": "yes"}, into a field-level *Errors. Other decode errors
// (malformed JSON) are returned unchanged.
func FromDecodeError(err error) error {
	var te *json.UnmarshalTypeError
	if !errors.As(err, &te) || te.Field == "" {
		return err
	}

	out := &Errors{}
	out.add(te.Field, typeMessage(te.Field, te.Type))
	return out
}

func typeMessage(field string, t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return fmt.Sprintf("%s must be true or false", field)
	case reflect.String:
		return fmt.Sprintf("%s must be a string", field)
	default:
		return fmt.Sprintf("%s must be a %s", field, t.Kind())
	}
}

// NullFields reports every field of dst that body sets to an explicit
// JSON null. Decoding a null into a pointer leaves it nil, which is
// indistinguishable from the field being absent; a supplied field may
// not be null. It returns nil when there is nothing to report.
func NullFields(body []byte, dst any) *Errors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var out *Errors
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if v, ok := raw[name]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if out == nil {
				out = &Errors{}
			}
			out.add(name, fmt.Sprintf("%s is a required field", name))
		}
	}
	return out
}

// TrimStrings trims surrounding whitespace from every string and *string
// field of the struct dst points to. A blank value becomes empty and is
// then caught by `required` or `min=1`.
func TrimStrings(dst any) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch {
		case f.Kind() == reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Pointer && !f.IsNil() && f.Elem().Kind() == reflect.String:
			f.Elem().SetString(strings.TrimSpace(f.Elem().String()))
		}
	}
}
