package schema

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	schemaTyperType     = reflect.TypeOf((*interface{ SchemaType() string })(nil)).Elem()
)

// Decode разбирает wire-представление в dst (указатель на структуру схемы).
// Отсутствующие обязательные поля, значения неверного типа, нарушения формата
// и неизвестные теги перечислений без запасного значения собираются в один
// SchemaValidationError. Лишние поля игнорируются.
func Decode(data []byte, casing Casing, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: decode target must be a non-nil pointer to struct, got %T", dst)
	}
	name := schemaName(dst)

	canonical, err := casing.toCamel(data)
	if err != nil {
		return &SchemaValidationError{Schema: name, Issues: []FieldIssue{{
			Expected: "object",
			Received: truncate(string(data)),
			Reason:   err.Error(),
		}}}
	}

	d := &decoder{}
	d.object(canonical, rv.Elem(), "")

	flagged := make(map[string]bool, len(d.issues))
	for _, issue := range d.issues {
		flagged[issue.Field] = true
	}
	for _, issue := range validationIssues(dst) {
		if !flagged[issue.Field] {
			d.issues = append(d.issues, issue)
		}
	}

	if len(d.issues) > 0 {
		return &SchemaValidationError{Schema: name, Issues: d.issues}
	}
	return nil
}

// DecodeResponse декодирует успешный ответ в dst, а не-2xx превращает в RemoteRejectionError.
func DecodeResponse(statusCode int, body []byte, casing Casing, dst any) error {
	if statusCode < 200 || statusCode >= 300 {
		return NewRemoteRejectionError(statusCode, body)
	}
	return Decode(body, casing, dst)
}

type decoder struct {
	issues []FieldIssue
}

func (d *decoder) add(path string, t reflect.Type, raw []byte, reason string) {
	received := "<missing>"
	if raw != nil {
		received = truncate(string(bytes.TrimSpace(raw)))
	}
	d.issues = append(d.issues, FieldIssue{
		Field:    path,
		Expected: typeLabel(t),
		Received: received,
		Reason:   reason,
	})
}

func (d *decoder) object(raw []byte, v reflect.Value, path string) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		d.add(path, v.Type(), raw, "value is not an object")
		return
	}
	d.fields(obj, v, path)
}

func (d *decoder) fields(obj map[string]json.RawMessage, v reflect.Value, path string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")

		// Встроенная группа полей разворачивается в тот же объект.
		if sf.Anonymous && tag == "" && sf.Type.Kind() == reflect.Struct {
			d.fields(obj, v.Field(i), path)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fieldPath := joinPath(path, name)

		raw, ok := obj[name]
		if !ok {
			if !strings.Contains(opts, "omitempty") {
				d.add(fieldPath, sf.Type, nil, "field required")
			}
			continue
		}
		d.value(raw, v.Field(i), fieldPath)
	}
}

func (d *decoder) value(raw json.RawMessage, fv reflect.Value, path string) {
	ft := fv.Type()
	null := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	switch {
	case isComposite(ft):
		d.object(raw, fv, path)

	case ft.Kind() == reflect.Slice && isComposite(ft.Elem()):
		// Пустой или null-список всегда даёт пустой срез, а не nil.
		if null {
			fv.Set(reflect.MakeSlice(ft, 0, 0))
			return
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			d.add(path, ft, raw, "value is not a list")
			return
		}
		s := reflect.MakeSlice(ft, len(items), len(items))
		for i, item := range items {
			d.object(item, s.Index(i), fmt.Sprintf("%s[%d]", path, i))
		}
		fv.Set(s)

	default:
		if null {
			d.add(path, ft, raw, "value must not be null")
			return
		}
		ptr := reflect.New(ft)
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			d.add(path, ft, raw, coercionReason(err))
			return
		}
		fv.Set(ptr.Elem())
	}
}

// isComposite сообщает, разбирается ли тип по полям, а не собственным Unmarshal.
func isComposite(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	pt := reflect.PointerTo(t)
	return !pt.Implements(jsonUnmarshalerType) && !pt.Implements(textUnmarshalerType)
}

func typeLabel(t reflect.Type) string {
	if t.Implements(schemaTyperType) {
		return reflect.Zero(t).Interface().(interface{ SchemaType() string }).SchemaType()
	}
	if t.PkgPath() == "github.com/shopspring/decimal" && t.Name() == "Decimal" {
		return "decimal"
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
		return "list of " + typeLabel(t.Elem())
	case reflect.Struct:
		return "object"
	default:
		return t.String()
	}
}

func coercionReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "cannot coerce " + typeErr.Value + " value"
	}
	return err.Error()
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
