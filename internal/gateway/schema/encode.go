package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

// Encode проверяет запрос и сериализует его в wire-представление casing.
// Некорректный запрос не сериализуется вовсе.
func Encode(v any, casing Casing) ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", schemaName(v), err)
	}
	return casing.fromCamel(data)
}

// EncodeQuery сериализует плоский запрос в параметры строки запроса.
func EncodeQuery(v any, casing Casing) (url.Values, error) {
	data, err := Encode(v, casing)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode %s as query: %w", schemaName(v), err)
	}

	query := make(url.Values, len(fields))
	for k, val := range fields {
		if val == nil {
			continue
		}
		query.Set(k, fmt.Sprint(val))
	}
	return query, nil
}

// MergeFields добавляет строковые поля в JSON-объект body. Пустое тело
// считается пустым объектом. Поля из fields перекрывают одноимённые поля body.
func MergeFields(body []byte, fields map[string]string) ([]byte, error) {
	obj := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("merge fields: body is not an object: %w", err)
		}
		if obj == nil {
			obj = map[string]json.RawMessage{}
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		encoded, err := json.Marshal(fields[k])
		if err != nil {
			return nil, fmt.Errorf("merge field %s: %w", k, err)
		}
		obj[k] = encoded
	}
	return json.Marshal(obj)
}
