/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: theme defaults for connection
// geometry plus logging. Values come from built-in defaults, then the YAML
// file, then GNF_* environment variables, and are checked against an
// embedded JSON schema.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	applog "gonodeflow/internal/log"
	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// ErrInvalidConfig marks configuration that cannot be parsed or fails the schema.
var ErrInvalidConfig = zerr.New("invalid configuration")

//go:embed schema.json
var schemaJSON []byte

// SizeConfig is a width/height pair.
type SizeConfig struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

func (s SizeConfig) size() vector.Size { return vector.Size{W: s.W, H: s.H} }

// ThemeConfig holds the defaults used by connections that do not override them.
type ThemeConfig struct {
	StartGap        float64    `yaml:"start_gap" json:"start_gap"`
	EndGap          float64    `yaml:"end_gap" json:"end_gap"`
	CornerRadius    float64    `yaml:"corner_radius" json:"corner_radius"`
	Curvature       float64    `yaml:"curvature" json:"curvature"`
	ExtensionOffset float64    `yaml:"extension_offset" json:"extension_offset"`
	BackEdgeGap     float64    `yaml:"back_edge_gap" json:"back_edge_gap"`
	HitTolerance    float64    `yaml:"hit_tolerance" json:"hit_tolerance"`
	PortSize        SizeConfig `yaml:"port_size" json:"port_size"`
	StartMarker     SizeConfig `yaml:"start_marker" json:"start_marker"`
	EndMarker       SizeConfig `yaml:"end_marker" json:"end_marker"`
	DefaultStyle    string     `yaml:"default_style" json:"default_style"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

// AppConfig is the user-editable configuration persisted as YAML.
// config_version: bump when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Theme         ThemeConfig   `yaml:"theme" json:"theme"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the built-in configuration. Theme values mirror
// pathcache.DefaultTheme.
func Defaults() AppConfig {
	th := pathcache.DefaultTheme()
	return AppConfig{
		ConfigVersion: 1,
		Theme: ThemeConfig{
			StartGap:        th.StartGap,
			EndGap:          th.EndGap,
			CornerRadius:    th.Routing.CornerRadius,
			Curvature:       th.Routing.Curvature,
			ExtensionOffset: th.Routing.ExtensionOffset,
			BackEdgeGap:     th.Routing.BackEdgeGap,
			HitTolerance:    th.HitTolerance,
			PortSize:        SizeConfig{W: th.PortSize.W, H: th.PortSize.H},
			StartMarker:     SizeConfig{W: th.StartMarker.W, H: th.StartMarker.H},
			EndMarker:       SizeConfig{W: th.EndMarker.W, H: th.EndMarker.H},
			DefaultStyle:    th.DefaultStyle.Kind.String(),
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "GNF_CONFIG"

	EnvStartGap        = "GNF_THEME_START_GAP"
	EnvEndGap          = "GNF_THEME_END_GAP"
	EnvCornerRadius    = "GNF_THEME_CORNER_RADIUS"
	EnvCurvature       = "GNF_THEME_CURVATURE"
	EnvExtensionOffset = "GNF_THEME_EXTENSION_OFFSET"
	EnvBackEdgeGap     = "GNF_THEME_BACK_EDGE_GAP"
	EnvHitTolerance    = "GNF_THEME_HIT_TOLERANCE"
	EnvDefaultStyle    = "GNF_THEME_DEFAULT_STYLE"

	EnvLogLevel  = "GNF_LOG_LEVEL"
	EnvLogFormat = "GNF_LOG_FORMAT"
	EnvLogSource = "GNF_LOG_SOURCE"
	EnvLogFile   = "GNF_LOG_FILE"
)

// envKeys maps dotted config keys to their override variable.
var envKeys = map[string]string{
	"theme.start_gap":        EnvStartGap,
	"theme.end_gap":          EnvEndGap,
	"theme.corner_radius":    EnvCornerRadius,
	"theme.curvature":        EnvCurvature,
	"theme.extension_offset": EnvExtensionOffset,
	"theme.back_edge_gap":    EnvBackEdgeGap,
	"theme.hit_tolerance":    EnvHitTolerance,
	"theme.default_style":    EnvDefaultStyle,
	"logging.level":          EnvLogLevel,
	"logging.format":         EnvLogFormat,
	"logging.source":         EnvLogSource,
	"logging.file":           EnvLogFile,
}

// ConfigPath returns the per-user config file path. GNF_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoNodeFlow")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoNodeFlow")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "gonodeflow")
	}
	if base == "" {
		return "", zerr.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file when present, applies env overrides and
// validates the result.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Defaults(), nil
	}
	if err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, Validate(cfg)
}

// LoadFile reads one YAML file on top of the defaults. Keys missing from the
// file keep their default, so an explicit zero in the file is honored.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, zerr.With(zerr.Wrap(err, "read config"), "path", path)
	}
	fileCfg := Defaults()
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, zerr.With(zerr.Wrap(ErrInvalidConfig, err.Error()), "path", path)
	}
	mergeInto(&cfg, &fileCfg)
	return cfg, nil
}

// Save writes cfg to the per-user config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "create config dir"), "path", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return zerr.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "write config"), "path", path)
	}
	return nil
}

// mergeInto copies src over dst, normalizing strings. Empty strings keep the
// dst value.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	style := dst.Theme.DefaultStyle
	if v := norm(src.Theme.DefaultStyle); v != "" {
		style = v
	}
	dst.Theme = src.Theme
	dst.Theme.DefaultStyle = style

	if v := norm(src.Logging.Level); v != "" {
		dst.Logging.Level = v
	}
	if v := norm(src.Logging.Format); v != "" {
		dst.Logging.Format = v
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	floats := map[string]*float64{
		EnvStartGap:        &cfg.Theme.StartGap,
		EnvEndGap:          &cfg.Theme.EndGap,
		EnvCornerRadius:    &cfg.Theme.CornerRadius,
		EnvCurvature:       &cfg.Theme.Curvature,
		EnvExtensionOffset: &cfg.Theme.ExtensionOffset,
		EnvBackEdgeGap:     &cfg.Theme.BackEdgeGap,
		EnvHitTolerance:    &cfg.Theme.HitTolerance,
	}
	for key, dst := range floats {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	if v := norm(os.Getenv(EnvDefaultStyle)); v != "" {
		cfg.Theme.DefaultStyle = v
	}
	if v := norm(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := norm(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var overriding a dotted config key, if it is set.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// Validate checks cfg against the embedded JSON schema. The returned error
// wraps ErrInvalidConfig and carries the failing fields as "fields" metadata.
func Validate(cfg AppConfig) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return zerr.Wrap(err, "load config schema")
	}
	if res.Valid() {
		return nil
	}
	fields := make([]string, 0, len(res.Errors()))
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		fields = append(fields, e.Field())
		msgs = append(msgs, e.String())
	}
	return zerr.With(zerr.Wrap(ErrInvalidConfig, strings.Join(msgs, "; ")), "fields", fields)
}

// CacheTheme converts the theme section into path cache defaults.
func (c AppConfig) CacheTheme() pathcache.Theme {
	kind, ok := routing.ParseKind(c.Theme.DefaultStyle)
	if !ok {
		kind = pathcache.DefaultTheme().DefaultStyle.Kind
	}
	return pathcache.Theme{
		StartGap:     c.Theme.StartGap,
		EndGap:       c.Theme.EndGap,
		HitTolerance: c.Theme.HitTolerance,
		PortSize:     c.Theme.PortSize.size(),
		StartMarker:  c.Theme.StartMarker.size(),
		EndMarker:    c.Theme.EndMarker.size(),
		Routing: routing.Params{
			Curvature:       c.Theme.Curvature,
			CornerRadius:    c.Theme.CornerRadius,
			ExtensionOffset: c.Theme.ExtensionOffset,
			BackEdgeGap:     c.Theme.BackEdgeGap,
		},
		DefaultStyle: routing.Style{Kind: kind},
	}
}

// LogOptions converts the logging section into logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
