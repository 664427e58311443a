/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/routing"
)

// isolate points the config path at a temp file that does not exist yet.
func isolate(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, p)
	return p
}

func TestDefaultsMatchCacheTheme(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, pathcache.DefaultTheme(), cfg.CacheTheme())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveThenLoadFile(t *testing.T) {
	p := isolate(t)
	cfg := Defaults()
	cfg.Theme.CornerRadius = 3
	cfg.Theme.EndGap = 0
	cfg.Theme.DefaultStyle = "orthogonal"
	require.NoError(t, Save(cfg))

	got, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	th := got.CacheTheme()
	assert.Equal(t, routing.KindOrthogonal, th.DefaultStyle.Kind)
	assert.Zero(t, th.EndGap)
	assert.InDelta(t, 3, th.Routing.CornerRadius, 1e-9)
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(p, []byte("theme:\n  curvature: 0.8\n  default_style: \" Step \"\nlogging:\n  level: DEBUG\n"), 0o600))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, cfg.Theme.Curvature, 1e-9)
	assert.Equal(t, "step", cfg.Theme.DefaultStyle)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, Defaults().Theme.HitTolerance, cfg.Theme.HitTolerance)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, routing.KindOrthogonal, cfg.CacheTheme().DefaultStyle.Kind)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("theme: [1, 2"), 0o600))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	var ze *zerr.Error
	require.True(t, errors.As(err, &ze))
	assert.Equal(t, bad, ze.Metadata()["path"])
}

func TestValidateReportsFields(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.HitTolerance = 0
	cfg.Theme.CornerRadius = -1
	cfg.Theme.DefaultStyle = "zigzag"
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	var ze *zerr.Error
	require.True(t, errors.As(err, &ze))
	fields, ok := ze.Metadata()["fields"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"theme.hit_tolerance", "theme.corner_radius", "theme.default_style", "logging.format"}, fields)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	p := isolate(t)
	require.NoError(t, os.WriteFile(p, []byte("theme:\n  curvature: 5\n"), 0o600))
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = " Debug"
	src.Logging.Format = "JSON"
	src.Logging.Source = true
	src.Logging.File = " /tmp/gnf.log "
	mergeInto(&dst, &src)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json", Source: true, File: "/tmp/gnf.log"}, dst.Logging)

	src = Defaults()
	src.Theme.DefaultStyle = ""
	mergeInto(&dst, &src)
	assert.Equal(t, Defaults().Theme.DefaultStyle, dst.Theme.DefaultStyle)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCornerRadius, "2.5")
	t.Setenv(EnvHitTolerance, "not-a-number")
	t.Setenv(EnvDefaultStyle, "Straight")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/gnf.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cfg.Theme.CornerRadius, 1e-9)
	assert.Equal(t, Defaults().Theme.HitTolerance, cfg.Theme.HitTolerance)
	assert.Equal(t, "straight", cfg.Theme.DefaultStyle)
	assert.Equal(t, LoggingConfig{Level: "error", Format: "json", Source: true, File: "/tmp/gnf.log"}, cfg.Logging)

	opts := cfg.LogOptions()
	assert.Equal(t, "error", opts.Level)
	assert.True(t, opts.AddSource)

	name, ok := EnvOverrideFor("theme.corner_radius")
	assert.True(t, ok)
	assert.Equal(t, EnvCornerRadius, name)
	_, ok = EnvOverrideFor("theme.curvature")
	assert.False(t, ok)
	_, ok = EnvOverrideFor("nope")
	assert.False(t, ok)
}
