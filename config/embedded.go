// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches the parsed defaults from the embedded JSON file.
// The embedded JSON file in defaults/ is the source for a fresh install.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/texelfx/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

// embeddedDefaults returns the parsed defaults. The result is cached after
// the first call.
func embeddedDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		var cfg Config
		if err := json.Unmarshal(defaults.Transitions(), &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	return embedded, embeddedErr
}

// defaultConfig returns a copy of the embedded defaults, or nil when they
// cannot be parsed.
func defaultConfig() Config {
	cfg, err := embeddedDefaults()
	if err != nil || cfg == nil {
		return nil
	}
	return Clone(cfg)
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	cfg := defaultConfig()
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	return cfg
}
