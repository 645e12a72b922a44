package web

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// decodeForm fills the `form`-tagged fields of target from posted values.
// Supported kinds: string, bool, int and []string.
func decodeForm(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &InvalidDecodeError{Type: reflect.TypeOf(target)}
	}

	v := val.Elem()
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		name := field.Tag.Get("form")
		if name == "" {
			continue
		}
		values, exists := input[name]
		if !exists || len(values) == 0 {
			continue
		}

		fieldVal := v.Field(i)
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(values[0])
		case reflect.Bool:
			// Checkboxes post "on" unless they carry an explicit value.
			raw := strings.ToLower(values[0])
			fieldVal.SetBool(raw == "on" || raw == "true")
		case reflect.Int:
			if values[0] == "" {
				continue
			}
			n, err := strconv.Atoi(values[0])
			if err != nil {
				return err
			}
			fieldVal.SetInt(int64(n))
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				fieldVal.Set(reflect.ValueOf(append([]string(nil), values...)))
			}
		}
	}
	return nil
}

type InvalidDecodeError struct {
	Type reflect.Type
}

func (e *InvalidDecodeError) Error() string {
	if e.Type == nil {
		return "form: decode(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "form: decode(non-pointer " + e.Type.String() + ")"
	}
	return "form: decode(nil " + e.Type.String() + ")"
}
