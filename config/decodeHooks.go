package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Returns a decodeHook function that can be used to decode kernels from a yaml file using mapstructure.
// This supports configuration solutions like spf13/viper that use mapstructure to unmarshal yaml files.
func GetDecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, yamlEntry interface{}) (interface{}, error) {
		if t == reflect.TypeOf((*Kernel)(nil)).Elem() {
			// If the target type is Kernel, create the correct kernel type from the yaml entry
			return createKernelFromYamlEntry(yamlEntry)
		}
		// Otherwise, return the yaml entry as is (default behaviour)
		return yamlEntry, nil
	}
}

// Creates a kernel from a yaml entry based on the kernel "type" (or "Type") field.
func createKernelFromYamlEntry(yamlEntry interface{}) (Kernel, error) {
	if k, ok := yamlEntry.(Kernel); ok {
		return k, nil
	}

	m, ok := stringifyKeys(yamlEntry).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("kernel entry cannot be parsed to map[string]interface{}: %v", yamlEntry)
	}

	// must check both m["type"] and m["Type"] because some yaml parsers convert to lower case and some don't
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("kernel type field is missing or not a string")
		}
	}

	fields := make(map[string]interface{}, len(m))
	for key, value := range m {
		if key != "type" && key != "Type" {
			fields[key] = value
		}
	}

	switch typeStr {
	case "samples":
		var params SamplesParams
		if err := decodeStrict(fields, &params); err != nil {
			return nil, fmt.Errorf("samples kernel: %w", err)
		}
		// Use constructor to create the kernel for its error checking
		return NewSamplesKernel(params)
	case "gamma":
		var params GammaParams
		if err := decodeStrict(fields, &params); err != nil {
			return nil, fmt.Errorf("gamma kernel: %w", err)
		}
		return NewGammaKernel(params)
	default:
		return nil, fmt.Errorf("unknown kernel type: %s", typeStr)
	}
}

// Decodes input into result with mapstructure, rejecting keys that result does not define.
func decodeStrict(input interface{}, result interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook:       GetDecodeHook(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           result,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// yaml.v2 decodes nested maps as map[interface{}]interface{}; mapstructure and the
// kernel type switch expect string keys.
func stringifyKeys(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for key, value := range x {
			m[fmt.Sprint(key)] = stringifyKeys(value)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for key, value := range x {
			m[key] = stringifyKeys(value)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(x))
		for i, value := range x {
			s[i] = stringifyKeys(value)
		}
		return s
	default:
		return v
	}
}
