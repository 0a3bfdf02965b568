package sink

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// headersOf derives column names from the row struct's json tags, in field
// declaration order. Every table's rows share one concrete struct type.
func headersOf(row any) []string {
	t := reflect.TypeOf(row)
	v := reflect.ValueOf(row)
	if t.Kind() == reflect.Pointer {
		t, v = t.Elem(), v.Elem()
	}
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			cols = append(cols, headersOf(v.Field(i).Interface())...)
			continue
		}
		cols = append(cols, columnName(f.Tag.Get("json"), f.Name))
	}
	return cols
}

// cellsOf renders one row as strings in header order. Nil pointers become
// empty cells, nested values (qualifier lists, related shots) are
// JSON-encoded into a single cell.
func cellsOf(row any) []string {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	var cells []string
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).Anonymous {
			cells = append(cells, cellsOf(v.Field(i).Interface())...)
			continue
		}
		cells = append(cells, formatCell(v.Field(i)))
	}
	return cells
}

func columnName(tag, fallback string) string {
	if tag == "" || tag == "-" {
		return fallback
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return fallback
	}
	return tag
}

func formatCell(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Slice, reflect.Map, reflect.Struct:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return ""
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	}
	return ""
}
