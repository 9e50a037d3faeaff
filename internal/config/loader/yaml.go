package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if config == nil {
		config = make(map[string]any)
	}
	return normalize(config).(map[string]any), nil
}

// normalize turns the map[any]any nodes yaml produces for non-string
// keys into map[string]any so DeepMerge treats them as sections.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return v
	}
}
