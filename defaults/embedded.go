// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files.

package defaults

import _ "embed"

//go:embed transitions.json
var transitions []byte

// Transitions returns the embedded transitions JSON.
func Transitions() []byte {
	return transitions
}
