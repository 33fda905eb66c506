package config

import (
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// readDocument parses a YAML file into its top-level sections.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrConfigLoad, path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrConfigLoad, path)
	}
	return doc, nil
}

// sectionValues flattens a record section into field name -> scalar.
// An entry is either a bare scalar or a mapping carrying the scalar under "value".
func sectionValues(doc map[string]any, section string) (map[string]any, error) {
	raw, ok := doc[section]
	if !ok {
		return nil, fmt.Errorf("%w: missing section %q", domain.ErrConfigLoad, section)
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: section %q is not a mapping", domain.ErrConfigLoad, section)
	}

	values := make(map[string]any, len(entries))
	for key, entry := range entries {
		v := entry
		if m, isMap := entry.(map[string]any); isMap {
			var hasValue bool
			if v, hasValue = m["value"]; !hasValue {
				return nil, fmt.Errorf("%w: %s.%s has no value", domain.ErrConfigLoad, section, key)
			}
		}
		if v == nil {
			return nil, fmt.Errorf("%w: %s.%s is null", domain.ErrConfigLoad, section, key)
		}
		values[key] = v
	}
	return values, nil
}

// decodeStrict decodes values into out, failing on missing or unknown fields.
func decodeStrict(values map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(integralHook),
		ErrorUnset:  true,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
	}
	return nil
}

// integralHook refuses to truncate fractional numbers into integer fields.
func integralHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	f, ok := data.(float64)
	if !ok {
		return data, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return int(f), nil
}
