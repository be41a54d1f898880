/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields should be preserved when possible (yaml handles this by ignoring extras on unmarshal).

type FontsConfig struct {
	// Dir is the directory scanned for .ttf/.ttc/.otf files used for text measurement.
	Dir string `yaml:"dir"`
}

type FitConfig struct {
	// LineHeightFactor models the renderer's intrinsic leading; 1.2 matches
	// PowerPoint single spacing.
	LineHeightFactor float64 `yaml:"line_height_factor"`
	MaxTitleSize     int     `yaml:"max_title_size"`
	MaxFontSize      int     `yaml:"max_font_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Fonts         FontsConfig   `yaml:"fonts"`
	Fit           FitConfig     `yaml:"fit"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Fonts:         FontsConfig{Dir: ""},
		Fit:           FitConfig{LineHeightFactor: 1.2, MaxTitleSize: 36, MaxFontSize: 24},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvFontDir          = "PXF_FONT_DIR"
	EnvLineHeightFactor = "PXF_LINE_HEIGHT_FACTOR"
	EnvMaxTitleSize     = "PXF_MAX_TITLE_SIZE"
	EnvMaxFontSize      = "PXF_MAX_FONT_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PXF_LOG_LEVEL"
	EnvLogFormat = "PXF_LOG_FORMAT"
	EnvLogSource = "PXF_LOG_SOURCE"
	EnvLogFile   = "PXF_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Pptxfill")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Pptxfill")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "pptxfill")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Fonts.Dir) != "" {
		dst.Fonts.Dir = strings.TrimSpace(src.Fonts.Dir)
	}
	if src.Fit.LineHeightFactor > 0 {
		dst.Fit.LineHeightFactor = src.Fit.LineHeightFactor
	}
	if src.Fit.MaxTitleSize > 0 {
		dst.Fit.MaxTitleSize = src.Fit.MaxTitleSize
	}
	if src.Fit.MaxFontSize > 0 {
		dst.Fit.MaxFontSize = src.Fit.MaxFontSize
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvFontDir)); v != "" {
		cfg.Fonts.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLineHeightFactor)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Fit.LineHeightFactor = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxTitleSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Fit.MaxTitleSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxFontSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Fit.MaxFontSize = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "fonts.dir":
		if os.Getenv(EnvFontDir) != "" {
			return EnvFontDir, true
		}
	case "fit.line_height_factor":
		if os.Getenv(EnvLineHeightFactor) != "" {
			return EnvLineHeightFactor, true
		}
	case "fit.max_title_size":
		if os.Getenv(EnvMaxTitleSize) != "" {
			return EnvMaxTitleSize, true
		}
	case "fit.max_font_size":
		if os.Getenv(EnvMaxFontSize) != "" {
			return EnvMaxFontSize, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// MaxSizeFor returns the configured ceiling for a placeholder, honoring the
// title/body distinction from the payload.
func (f FitConfig) MaxSizeFor(isTitle bool) int {
	if isTitle {
		if f.MaxTitleSize > 0 {
			return f.MaxTitleSize
		}
		return Defaults().Fit.MaxTitleSize
	}
	if f.MaxFontSize > 0 {
		return f.MaxFontSize
	}
	return Defaults().Fit.MaxFontSize
}
