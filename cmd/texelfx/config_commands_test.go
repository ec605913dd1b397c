// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/texelfx/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigPathHonoursEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	t.Setenv(config.PathEnv, path)

	out, err := runCommand(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected %s, got %q", path, out)
	}
}

func TestConfigShowDefaultsInEachFormat(t *testing.T) {
	for _, tc := range []struct {
		format string
		name   string
	}{
		{"json", "x.json"},
		{"toml", "x.toml"},
		{"yaml", "x.yaml"},
	} {
		out, err := runCommand(t, "config", "show", "--defaults", "--format", tc.format)
		if err != nil {
			t.Fatalf("show %s: %v", tc.format, err)
		}
		cfg, err := config.Decode([]byte(out), tc.name)
		if err != nil {
			t.Fatalf("decode %s output: %v\n%s", tc.format, err, out)
		}
		if got := cfg.GetFloat("rotate", "damage_timeout_max", 0); got != 1000 {
			t.Fatalf("%s: expected damage_timeout_max 1000, got %v", tc.format, got)
		}
	}

	if _, err := runCommand(t, "config", "show", "--defaults", "--format", "xml"); err == nil {
		t.Fatalf("expected an unknown format to fail")
	}
}

func TestConfigShowTable(t *testing.T) {
	out, err := runCommand(t, "config", "show", "--defaults", "--table")
	if err != nil {
		t.Fatalf("show --table: %v", err)
	}
	for _, want := range []string{"app_close", "duration_in", "window_closed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestConfigReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transitions.toml")
	t.Setenv(config.PathEnv, path)

	if _, err := runCommand(t, "config", "reset", "--force"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read reset file: %v", err)
	}
	cfg, err := config.Decode(data, path)
	if err != nil {
		t.Fatalf("decode reset file: %v", err)
	}
	if got := cfg.GetInt("popup", "duration_in", 0); got != 250 {
		t.Fatalf("expected popup duration_in 250, got %d", got)
	}

	if _, err := runCommand(t, "config", "reset"); err == nil {
		t.Fatalf("expected reset without --force to refuse an existing file")
	}
}
