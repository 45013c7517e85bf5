// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
theme = "nord"

[defaults]
owner = "7"
group = "5"

[log]
level = "debug"
file = "/tmp/permcalc.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "nord", cfg.Theme)
	require.Equal(t, Defaults{Owner: "7", Group: "5"}, cfg.Defaults)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/tmp/permcalc.log", cfg.LogFile())
	require.Equal(t, DefaultMaxSizeMB, cfg.Log.MaxSizeMB)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed toml", content: "theme = ", wantErr: ErrInvalidConfig},
		{name: "unknown theme", content: `theme = "solarized"`, wantErr: ErrUnknownTheme},
		{name: "default out of range", content: "[defaults]\nowner = \"8\"", wantErr: ErrInvalidDefault},
		{name: "default too long", content: "[defaults]\npublic = \"755\"", wantErr: ErrInvalidDefault},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, testCase.content))
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Theme = "gruvbox"
	cfg.Defaults = Defaults{Owner: "6", Group: "4", Public: "4"}

	require.NoError(t, Save(path, cfg, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestSaveRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, Default(), false))

	require.ErrorIs(t, Save(path, Default(), false), ErrConfigExists)
	require.NoError(t, Save(path, Default(), true))
}

func TestSaveValidates(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Defaults.Group = "x"

	err := Save(filepath.Join(t.TempDir(), "config.toml"), cfg, true)
	require.ErrorIs(t, err, ErrInvalidDefault)
}
