package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Валидатор не применяет правила к полям-структурам, поэтому decimal
	// передаётся ему точной строкой. Во float суммы не переводятся.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return val.IsPositive()
		case string:
			d, err := decimal.NewFromString(val)
			return err == nil && d.IsPositive()
		default:
			return false
		}
	}); err != nil {
		panic(fmt.Sprintf("register positive validation: %v", err))
	}

	if err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	}); err != nil {
		panic(fmt.Sprintf("register enum validation: %v", err))
	}

	return v
}

// Validate проверяет запрос или сущность по validate-тегам.
func Validate(v any) error {
	if issues := validationIssues(v); len(issues) > 0 {
		return &SchemaValidationError{Schema: schemaName(v), Issues: issues}
	}
	return nil
}

func validationIssues(v any) []FieldIssue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldIssue{{Expected: "object", Received: fmt.Sprintf("%T", v), Reason: err.Error()}}
	}

	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{
			Field:    wirePath(fe.Namespace()),
			Expected: expectation(fe),
			Received: describe(fe.Value()),
			Reason:   reason(fe),
		})
	}
	return issues
}

// wirePath убирает из пространства имён валидатора имена Go-типов:
// wire-имена всегда начинаются со строчной буквы.
func wirePath(namespace string) string {
	segments := strings.Split(namespace, ".")
	kept := segments[:0]
	for _, s := range segments {
		if s == "" {
			continue
		}
		if unicode.IsUpper([]rune(s)[0]) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, ".")
}

func expectation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "non-empty value"
	case "email":
		return "email address"
	case "url", "http_url":
		return "http(s) URL"
	case "max":
		return "at most " + fe.Param() + " characters"
	case "positive":
		return "positive decimal"
	case "enum":
		if st, ok := fe.Value().(interface{ SchemaType() string }); ok {
			return st.SchemaType()
		}
		return "declared enum tag"
	default:
		return fe.Tag()
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "invalid email format"
	case "url", "http_url":
		return "invalid URL"
	case "max":
		return "value is too long"
	case "positive":
		return "value must be greater than 0"
	case "enum":
		return "unknown enum tag"
	default:
		return "invalid value"
	}
}

func describe(v any) string {
	s := fmt.Sprintf("%q", fmt.Sprint(v))
	if _, ok := v.(string); !ok {
		s = fmt.Sprint(v)
	}
	return truncate(s)
}

// truncate обрезает s до limit байт, не разрывая многобайтовые символы.
func truncate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func schemaName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
