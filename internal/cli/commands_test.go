// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/janderssonse/permcalc/internal/config"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcCommand_Plain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantOctal    string
		wantSymbolic string
		wantWarning  string
	}{
		{
			name:         "all digits",
			args:         []string{"--owner", "7", "--group", "5", "--public", "5"},
			wantOctal:    "0755",
			wantSymbolic: "rwxr-xr-x",
		},
		{
			name:         "nothing set",
			args:         nil,
			wantOctal:    "0000",
			wantSymbolic: "---------",
		},
		{
			name:         "rejected digit keeps previous value",
			args:         []string{"--owner", "8", "--group", "4"},
			wantOctal:    "0040",
			wantSymbolic: "---r-----",
			wantWarning:  `ignoring owner digit "8"`,
		},
		{
			name:         "toggles applied after digits",
			args:         []string{"--owner", "6", "--toggle", "owner:execute", "--toggle", "o:r"},
			wantOctal:    "0704",
			wantSymbolic: "rwx---r--",
		},
		{
			name:         "toggle twice restores",
			args:         []string{"--group", "5", "--toggle", "g:w", "--toggle", "group:write"},
			wantOctal:    "0050",
			wantSymbolic: "---r-x---",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := runCLI(t, "", append([]string{"--plain", "calc"}, testCase.args...)...)

			require.NoError(t, result.err)
			assert.Equal(t, "octal:"+testCase.wantOctal+"\nsymbolic:"+testCase.wantSymbolic+"\n", result.stdout)

			if testCase.wantWarning != "" {
				assert.Contains(t, result.stderr, "warning: "+testCase.wantWarning)
			}
		})
	}
}

func TestCalcCommand_SeedsFromConfig(t *testing.T) {
	t.Parallel()

	result := runCLI(t, "[defaults]\nowner = \"6\"\ngroup = \"4\"\npublic = \"4\"\n", "--plain", "calc", "--public", "0")

	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "octal:0640\n")
}

func TestCalcCommand_InvalidToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		toggle string
		want   error
	}{
		{name: "missing separator", toggle: "owner", want: ErrInvalidArgument},
		{name: "unknown subject", toggle: "world:read", want: permission.ErrUnknownSubject},
		{name: "unknown kind", toggle: "owner:delete", want: permission.ErrUnknownKind},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := runCLI(t, "", "calc", "--toggle", testCase.toggle)

			requireExitCode(t, result.err, ExitUsageError)
			require.ErrorIs(t, result.err, testCase.want)
		})
	}
}

func TestCalcCommand_JSON(t *testing.T) {
	t.Parallel()

	result := runCLI(t, "", "--json", "calc", "--owner", "7", "--group", "5", "--public", "1")
	require.NoError(t, result.err)

	var doc struct {
		Status string `json:"status"`
		Result struct {
			Octal    string `json:"octal"`
			Symbolic string `json:"symbolic"`
			Owner    int    `json:"owner"`
			Group    int    `json:"group"`
			Public   int    `json:"public"`
		} `json:"result"`
	}

	require.NoError(t, json.Unmarshal([]byte(result.stdout), &doc))
	assert.Equal(t, "success", doc.Status)
	assert.Equal(t, "0751", doc.Result.Octal)
	assert.Equal(t, "rwxr-x--x", doc.Result.Symbolic)
	assert.Equal(t, 7, doc.Result.Owner)
	assert.Equal(t, 5, doc.Result.Group)
	assert.Equal(t, 1, doc.Result.Public)
}

func TestCalcCommand_Table(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := runCLI(t, "", "calc", "--owner", "6", "--group", "4", "--public", "4")
	require.NoError(t, result.err)

	expected := "SUBJECT  DIGIT  SYMBOLIC\n" +
		"owner    6      rw-\n" +
		"group    4      r--\n" +
		"public   4      r--\n" +
		"0644 (rw-r--r--)\n"
	assert.Equal(t, expected, result.stdout)
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected string
		code     int
	}{
		{name: "three digits", args: []string{"644"}, expected: "octal:0644\nsymbolic:rw-r--r--\n"},
		{name: "leading zero", args: []string{"0755"}, expected: "octal:0755\nsymbolic:rwxr-xr-x\n"},
		{name: "not octal", args: []string{"789"}, code: ExitUsageError},
		{name: "missing argument", args: nil, code: ExitUsageError},
		{name: "too many arguments", args: []string{"644", "755"}, code: ExitUsageError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := runCLI(t, "", append([]string{"--plain", "convert"}, testCase.args...)...)

			if testCase.code != 0 {
				requireExitCode(t, result.err, testCase.code)

				return
			}

			require.NoError(t, result.err)
			assert.Equal(t, testCase.expected, result.stdout)
		})
	}
}

func TestInspectCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o600))
	require.NoError(t, os.Chmod(target, 0o754))

	result := runCLI(t, "", "--plain", "inspect", target)
	require.NoError(t, result.err)
	assert.Equal(t, "octal:0754\nsymbolic:rwxr-xr--\n", result.stdout)

	missing := runCLI(t, "", "inspect", filepath.Join(dir, "nope"))
	requireExitCode(t, missing.err, ExitNotFoundError)
	require.ErrorIs(t, missing.err, os.ErrNotExist)

	none := runCLI(t, "", "inspect")
	requireExitCode(t, none.err, ExitUsageError)
	require.ErrorIs(t, none.err, ErrMissingArgument)
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	pathResult := runCLIWithConfig(t, configPath, "config", "path")
	require.NoError(t, pathResult.err)
	assert.Equal(t, configPath+"\n", pathResult.stdout)

	require.NoError(t, runCLIWithConfig(t, configPath, "config", "init").err)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	again := runCLIWithConfig(t, configPath, "config", "init")
	requireExitCode(t, again.err, ExitConfigError)
	require.ErrorIs(t, again.err, config.ErrConfigExists)

	require.NoError(t, runCLIWithConfig(t, configPath, "config", "init", "--force").err)

	show := runCLIWithConfig(t, configPath, "config", "show")
	require.NoError(t, show.err)
	assert.Contains(t, show.stdout, "theme = 'tokyo-night'")

	showJSON := runCLIWithConfig(t, configPath, "--json", "config", "show")
	require.NoError(t, showJSON.err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(showJSON.stdout), &doc))
	result, ok := doc["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tokyo-night", result["theme"])
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    []string
		expected string
	}{
		{name: "human", expected: "permcalc " + Version + "\n"},
		{name: "plain", flags: []string{"--plain"}, expected: "version:" + Version + "\n"},
		{name: "json", flags: []string{"--json"}, expected: `{"status":"success","version":"` + Version + `"}` + "\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := runCLI(t, "", append(testCase.flags, "version")...)

			require.NoError(t, result.err)
			assert.Equal(t, testCase.expected, result.stdout)
		})
	}
}

func TestConfigCommands_RecoverFromInvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown theme", body: "theme = \"solarized\"\n"},
		{name: "unknown log level", body: "[log]\nlevel = \"loud\"\n"},
		{name: "not toml", body: "theme = ["},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(configPath, []byte(testCase.body), 0o600))

			pathResult := runCLIWithConfig(t, configPath, "config", "path")
			require.NoError(t, pathResult.err)
			assert.Equal(t, configPath+"\n", pathResult.stdout)
			assert.Contains(t, pathResult.stderr, "config invalid, using built-in defaults")

			calc := runCLIWithConfig(t, configPath, "calc")
			requireExitCode(t, calc.err, ExitConfigError)

			initResult := runCLIWithConfig(t, configPath, "config", "init", "--force")
			require.NoError(t, initResult.err)

			loaded, err := config.Load(configPath)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), loaded)

			require.NoError(t, runCLIWithConfig(t, configPath, "calc").err)
		})
	}
}
