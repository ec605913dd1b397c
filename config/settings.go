// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Adapter serving transition parameters from a Config.
// Notes: Lookups never fail; problems are logged and the default is used.

package config

import "log"

// Settings answers transition.Settings lookups from a configuration.
type Settings struct {
	source func() Config
}

// NewSettings serves lookups from cfg.
func NewSettings(cfg Config) *Settings {
	return &Settings{source: func() Config { return cfg }}
}

// StoreSettings serves lookups from the loaded transitions file, picking up
// the result of every Reload.
func StoreSettings() *Settings {
	return &Settings{source: Transitions}
}

func (s *Settings) lookup(transition, key string) (interface{}, bool) {
	section := s.source().Section(transition)
	if section == nil {
		log.Printf("Config: No [%s] transition settings", transition)
		return nil, false
	}
	raw, ok := section[key]
	if !ok {
		log.Printf("Config: Missing %s.%s", transition, key)
		return nil, false
	}
	return raw, true
}

func (s *Settings) GetInt(transition, key string, def int) int {
	raw, ok := s.lookup(transition, key)
	if !ok {
		return def
	}
	v, ok := toInt(raw)
	if !ok {
		log.Printf("Config: Invalid %s.%s = %v, using %d", transition, key, raw, def)
		return def
	}
	return v
}

func (s *Settings) GetDouble(transition, key string, def float64) float64 {
	raw, ok := s.lookup(transition, key)
	if !ok {
		return def
	}
	v, ok := toFloat(raw)
	if !ok {
		log.Printf("Config: Invalid %s.%s = %v, using %g", transition, key, raw, def)
		return def
	}
	return v
}
