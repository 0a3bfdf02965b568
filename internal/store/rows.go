package store

import (
	"encoding/json"
	"reflect"
	"strings"
	"unicode"
)

// colKind drives per-dialect SQL type selection.
type colKind int

const (
	colInt colKind = iota
	colFloat
	colText
	colBool
	colJSON
)

type column struct {
	name string
	kind colKind
}

// columnsFor derives the table's columns from a row struct: field
// declaration order, snake_case names from the json tags, kinds from the
// Go types. Embedded structs are flattened.
func columnsFor(row any) []column {
	t := reflect.TypeOf(row)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			cols = append(cols, columnsFor(reflect.New(f.Type).Elem().Interface())...)
			continue
		}
		cols = append(cols, column{
			name: snakeCase(jsonName(f)),
			kind: kindOf(f.Type),
		})
	}
	return cols
}

// valuesFor renders one row in column order. Pointer fields pass through
// as-is (both drivers treat nil pointers as NULL); nested values are
// JSON-encoded.
func valuesFor(row any) []any {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	var vals []any
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).Anonymous {
			vals = append(vals, valuesFor(v.Field(i).Interface())...)
			continue
		}
		vals = append(vals, fieldValue(v.Field(i)))
	}
	return vals
}

func fieldValue(v reflect.Value) any {
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Struct:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return nil
		}
		return string(b)
	}
	return v.Interface()
}

func kindOf(t reflect.Type) colKind {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return colInt
	case reflect.Float32, reflect.Float64:
		return colFloat
	case reflect.Bool:
		return colBool
	case reflect.String:
		return colText
	default:
		return colJSON
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

// snakeCase normalizes mixed-tag names (eventId, expandedMinute, match_id)
// to one SQL naming convention.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
