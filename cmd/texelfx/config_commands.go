// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/config_commands.go
// Summary: Inspect and reset the transitions file.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelfx/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Transition configuration utilities",
	}
	configCmd.AddCommand(newConfigPathCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigResetCommand())
	return configCmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the transitions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	var format string
	var builtin bool
	var asTable bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective transition settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.Config
			if builtin {
				cfg = config.Defaults()
			} else {
				cfg = config.Transitions()
				if err := config.Err(); err != nil {
					return fmt.Errorf("load transitions: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if asTable {
				fmt.Fprintln(out, renderTable(out, []string{"Section", "Key", "Value"}, settingRows(cfg)))
				return nil
			}
			name, err := formatName(format)
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg, name)
			if err != nil {
				return fmt.Errorf("encode %s: %w", format, err)
			}
			out.Write(data)
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, toml or yaml")
	cmd.Flags().BoolVar(&builtin, "defaults", false, "Show the built-in defaults instead of the file")
	cmd.Flags().BoolVar(&asTable, "table", false, "Show one row per setting")
	return cmd
}

func newConfigResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the transitions file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("transitions file already exists at %s (use --force to replace it)", path)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			config.Set(config.Defaults())
			if err := config.Save(); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default transitions to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing file")
	return cmd
}

// formatName maps a format flag onto a file name understood by config.Encode.
func formatName(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return "transitions.json", nil
	case "toml":
		return "transitions.toml", nil
	case "yaml", "yml":
		return "transitions.yaml", nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, toml or yaml)", format)
	}
}

func settingRows(cfg config.Config) [][]string {
	sections := make([]string, 0, len(cfg))
	for name := range cfg {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	var rows [][]string
	for _, name := range sections {
		section := cfg.Section(name)
		keys := make([]string, 0, len(section))
		for key := range section {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			rows = append(rows, []string{name, key, fmt.Sprint(section[key])})
		}
	}
	return rows
}
