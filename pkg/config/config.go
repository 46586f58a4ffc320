// Package config resolves recorder and CLI configuration.
//
// Values are resolved in precedence order: built-in defaults, then an
// optional YAML config file, then HARREC_* environment variables. The
// resolved Config tracks where each value came from so `harrec config` style
// debugging stays possible.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvOutputDir      = "HARREC_OUTPUT_DIR"
	EnvCreatorName    = "HARREC_CREATOR_NAME"
	EnvCreatorVersion = "HARREC_CREATOR_VERSION"
	EnvConfigFile     = "HARREC_CONFIG"
	EnvLogLevel       = "HARREC_LOG_LEVEL"
	EnvLogFormat      = "HARREC_LOG_FORMAT"
)

// Value source identifiers.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
)

// HeaderKV is one base header applied to every recorded exchange.
type HeaderKV struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Config holds the resolved configuration.
type Config struct {
	// OutputDir is where default-named trace files are written.
	OutputDir string `yaml:"outputDir"`

	// CreatorName and CreatorVersion populate the HAR creator record.
	CreatorName    string `yaml:"creatorName"`
	CreatorVersion string `yaml:"creatorVersion"`

	// BaseHeaders are applied to every exchange; per-call headers win.
	BaseHeaders []HeaderKV `yaml:"baseHeaders"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat"`

	// Sources maps field names to where their value came from.
	Sources map[string]string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:      ".",
		CreatorName:    "harrec",
		CreatorVersion: "dev",
		LogLevel:       "info",
		LogFormat:      "text",
		Sources: map[string]string{
			"outputDir":      SourceDefault,
			"creatorName":    SourceDefault,
			"creatorVersion": SourceDefault,
			"logLevel":       SourceDefault,
			"logFormat":      SourceDefault,
		},
	}
}

// LoadFile merges a YAML config file into cfg, marking merged fields as
// file-sourced. A missing file is not an error; a malformed one is.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
		cfg.Sources["outputDir"] = SourceFile
	}
	if fileCfg.CreatorName != "" {
		cfg.CreatorName = fileCfg.CreatorName
		cfg.Sources["creatorName"] = SourceFile
	}
	if fileCfg.CreatorVersion != "" {
		cfg.CreatorVersion = fileCfg.CreatorVersion
		cfg.Sources["creatorVersion"] = SourceFile
	}
	if len(fileCfg.BaseHeaders) > 0 {
		cfg.BaseHeaders = fileCfg.BaseHeaders
		cfg.Sources["baseHeaders"] = SourceFile
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
		cfg.Sources["logLevel"] = SourceFile
	}
	if fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
		cfg.Sources["logFormat"] = SourceFile
	}
	return nil
}

// LoadEnv merges HARREC_* environment variables into cfg. Environment
// values win over file values.
func LoadEnv(cfg *Config) {
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
		cfg.Sources["outputDir"] = SourceEnv
	}
	if v := os.Getenv(EnvCreatorName); v != "" {
		cfg.CreatorName = v
		cfg.Sources["creatorName"] = SourceEnv
	}
	if v := os.Getenv(EnvCreatorVersion); v != "" {
		cfg.CreatorVersion = v
		cfg.Sources["creatorVersion"] = SourceEnv
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
}

// Load resolves the effective configuration: defaults, then the config file
// (explicit path, or $HARREC_CONFIG, or .harrec.yaml in the working
// directory), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = ".harrec.yaml"
	}
	if err := LoadFile(&cfg, path); err != nil {
		return cfg, err
	}

	LoadEnv(&cfg)
	return cfg, nil
}
