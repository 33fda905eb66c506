package config

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

type field struct {
	name  string
	value reflect.Value
}

// fieldsOf lists the declared fields of a record in declaration order.
func fieldsOf(record any) []field {
	v := reflect.ValueOf(record)
	t := v.Type()
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("mapstructure")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, field{name: name, value: v.Field(i)})
	}
	return fields
}

// FieldNames returns the declared field names of a record (PhysicalConstants or
// SimulationParameters) in declaration order.
func FieldNames(record any) []string {
	fields := fieldsOf(record)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

func provenance(record any) map[string]string {
	fields := fieldsOf(record)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		switch f.value.Kind() {
		case reflect.Float64:
			out[f.name] = FormatDecimal(f.value.Float())
		case reflect.Int:
			out[f.name] = strconv.FormatInt(f.value.Int(), 10)
		default:
			out[f.name] = f.value.String()
		}
	}
	return out
}

// FormatDecimal renders v with the fewest digits that read back to the same float.
// Integral values keep a trailing ".0" ("100000.0") and magnitudes outside
// [1e-4, 1e16) use exponent notation ("1e-05", "8.854e-12").
func FormatDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
