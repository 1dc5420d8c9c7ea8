package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads a YAML document and flattens it into dotted keys.
// Both nested mappings and literal dotted keys are accepted:
//
//	jwt:
//	  access:
//	    expire:
//	      minutes: 15
//	jwt.issuer: tokenauth
func LoadYAMLFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return m, nil
}

// ParseYAML flattens a YAML document into dotted keys.
func ParseYAML(data []byte) (Map, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out := Map{}
	flatten("", root, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out Map) {
	for k, v := range node {
		key := strings.TrimSpace(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
