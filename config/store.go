// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and migration logic for the transitions store.

package config

import "log"

func loadLocked() error {
	path, err := Path()
	if err != nil {
		log.Printf("Config: Failed to resolve transitions config path: %v", err)
		transitions = make(Config)
		applyDefaults(transitions)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read transitions config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if exists && len(cfg) == 0 && readErr == nil {
		if def := defaultConfig(); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				log.Printf("Config: Failed to write default transitions config: %v", err)
				readErr = err
			}
		}
	}

	if !exists {
		cfg = make(Config)
		migrated, migrateErr := migrateFromLegacy(cfg)
		if migrateErr != nil {
			log.Printf("Config: Legacy transitions migration error: %v", migrateErr)
			if readErr == nil {
				readErr = migrateErr
			}
		}
		if !migrated {
			if def := defaultConfig(); def != nil {
				cfg = def
			}
		}
		applyDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write transitions config: %v", err)
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applyDefaults(cfg)
	}

	transitions = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded transitions config from %s", path)
	}
	return readErr
}
