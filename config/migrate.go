// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Import of a legacy transitions.ini key file.
// Notes: The key files only hold [section] headers and numeric key=value
//   lines, which parse as TOML.

package config

func migrateFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacy, exists, err := readConfig(legacyPath)
	if err != nil || !exists {
		return false, err
	}

	migrated := false
	for name := range legacy {
		if copySection(cfg, legacy, name) {
			migrated = true
		}
	}
	return migrated, nil
}

func copySection(dst, src Config, name string) bool {
	if _, ok := dst[name]; ok {
		return false
	}
	section := src.Section(name)
	if section == nil {
		return false
	}
	out := make(Section, len(section))
	for k, v := range section {
		out[k] = v
	}
	dst[name] = out
	return true
}
