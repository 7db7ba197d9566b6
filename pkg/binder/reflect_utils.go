package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct assigns values onto the fields of *v, looking each field
// up by its tagName tag (falling back to the lowercased field name).
// Fields tagged "-" and fields with no matching value keep their zero
// value. bindErr wraps every failure so callers can errors.Is on one
// sentinel per source.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		name := paramName(rt.Field(i), tagName)
		if name == "" {
			continue
		}
		vals := values[name]
		if len(vals) == 0 {
			continue
		}

		if err := setField(field, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, rt.Field(i).Name, err)
		}
	}
	return nil
}

// paramName resolves the lookup key for a struct field. An empty return
// means the field is skipped.
func paramName(field reflect.StructField, tagName string) string {
	tag := field.Tag.Get(tagName)
	if tag == "" {
		return strings.ToLower(field.Name)
	}
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func setField(field reflect.Value, values []string) error {
	ft := field.Type()

	if ft.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(ft.Elem()))
		}
		return setField(field.Elem(), values)
	}
	if ft.Kind() == reflect.Slice {
		return setSlice(field, values)
	}

	value := values[0]
	switch ft.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseLenientBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", ft.Kind())
	}
	return nil
}

// parseLenientBool accepts the strconv forms plus the values HTML forms
// and query strings commonly carry.
func parseLenientBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

// setSlice fills a slice field. Repeated parameters and comma-separated
// single parameters are equivalent: ?tag=a&tag=b binds the same as
// ?tag=a,b.
func setSlice(field reflect.Value, values []string) error {
	var parts []string
	for _, v := range values {
		if strings.Contains(v, ",") {
			parts = append(parts, strings.Split(v, ",")...)
		} else {
			parts = append(parts, v)
		}
	}

	slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
	for i, value := range parts {
		if err := setField(slice.Index(i), []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
