package wordimport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// schema holds the field rules of a normalized word. validator.Validate caches
// struct metadata and is safe for concurrent use.
type schema struct {
	validate *validator.Validate
	trans    ut.Translator
}

var wordSchema = mustNewSchema()

func mustNewSchema() *schema {
	s, err := newSchema()
	if err != nil {
		panic(fmt.Sprintf("wordimport: build schema: %v", err))
	}
	return s
}

func newSchema() (*schema, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &schema{validate: validate, trans: trans}, nil
}

// Validate parses raw into a NormalizedWord using the strict field rules.
// Keys must match field names exactly; other keys are ignored. Malformed
// input is reported through the returned issues, never as a panic.
// A nil issue slice means success.
func Validate(raw json.RawMessage) (domain.NormalizedWord, []domain.FieldError) {
	if !gjson.ValidBytes(raw) {
		return domain.NormalizedWord{}, []domain.FieldError{{Field: "", Message: "invalid JSON"}}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return domain.NormalizedWord{}, []domain.FieldError{{Field: "", Message: "expected object"}}
	}

	var p wordPayload
	if err := json.Unmarshal(exactKeys(root, payloadType), &p); err != nil {
		return domain.NormalizedWord{}, []domain.FieldError{decodeIssue(err)}
	}

	return validatePayload(&p)
}

// validatePayload trims and prunes p, then applies the field rules.
func validatePayload(p *wordPayload) (domain.NormalizedWord, []domain.FieldError) {
	p.normalize()

	if issues := wordSchema.check(p); len(issues) > 0 {
		return domain.NormalizedWord{}, issues
	}
	return p.toDomain(), nil
}

var payloadType = reflect.TypeOf(wordPayload{})

// exactKeys re-encodes r keeping only the object keys that name a field of t
// exactly. encoding/json matches keys case-insensitively, which would let the
// export format's "headWord" pass as "headword" and drop the rest of it.
func exactKeys(r gjson.Result, t reflect.Type) []byte {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch {
	case t.Kind() == reflect.Struct && r.IsObject():
		fields := jsonFields(t)
		var buf bytes.Buffer
		buf.WriteByte('{')
		r.ForEach(func(key, value gjson.Result) bool {
			ft, ok := fields[key.String()]
			if !ok {
				return true
			}
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			buf.WriteString(key.Raw)
			buf.WriteByte(':')
			buf.Write(exactKeys(value, ft))
			return true
		})
		buf.WriteByte('}')
		return buf.Bytes()

	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Struct && r.IsArray():
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range r.Array() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(exactKeys(item, t.Elem()))
		}
		buf.WriteByte(']')
		return buf.Bytes()

	default:
		return []byte(r.Raw)
	}
}

var fieldCache sync.Map // reflect.Type -> map[string]reflect.Type

// jsonFields maps the JSON names of t's fields to their types.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]reflect.Type)
	}

	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		fields[name] = f.Type
	}

	fieldCache.Store(t, fields)
	return fields
}

func (s *schema) check(p *wordPayload) []domain.FieldError {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}

	issues := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, domain.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fe.Translate(s.trans),
		})
	}
	return issues
}

// fieldPath drops the root struct name from a validator namespace:
// "wordPayload.definitions[0].meaningCn" -> "definitions[0].meaningCn".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func decodeIssue(err error) domain.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	return domain.FieldError{Field: "", Message: err.Error()}
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// formatIssues renders issues as "path: message", one string per issue.
func formatIssues(issues []domain.FieldError) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.String()
	}
	return out
}
