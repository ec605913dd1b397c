// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copies of transition configurations.

package config

// Clone returns a copy of cfg that shares no maps or slices with it, so
// callers may edit a section without touching the loaded file.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, value := range cfg {
		out[name] = cloneValue(value)
	}
	return out
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case Section:
		return cloneSection(v)
	case map[string]interface{}:
		// Decoders produce plain maps; store them as sections.
		return cloneSection(v)
	case []interface{}:
		list := make([]interface{}, len(v))
		for i, item := range v {
			list[i] = cloneValue(item)
		}
		return list
	default:
		return v
	}
}

func cloneSection(src map[string]interface{}) Section {
	out := make(Section, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}
