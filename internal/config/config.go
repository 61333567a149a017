// Package config loads numfu.yaml project configuration (spec.md §6:
// precision, recursion/iteration limits, stdlib path), the way the
// teacher's server/config package loads basil.yaml: optional file,
// environment override, CLI flags applied last.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is numfu's project configuration, the yaml counterpart of the
// flags cmd/numfu exposes (spec §6).
type Config struct {
	Precision  int    `yaml:"precision"`   // apd.Context precision, spec §4.6
	RecDepth   int    `yaml:"recDepth"`    // non-tail recursion budget, spec §4.5
	IterDepth  int    `yaml:"iterDepth"`   // tail-call trampoline budget, spec §4.5
	StdlibPath string `yaml:"stdlibPath"`  // directory of .nfu modules that imports fall back to
	BaseDir    string `yaml:"-"`           // directory containing the config file, for resolving StdlibPath
}

// Defaults returns the configuration used when no numfu.yaml is found
// and no flags override it.
func Defaults() *Config {
	return &Config{
		Precision: 34,
		RecDepth:  1000,
		IterDepth: 1_000_000,
	}
}

// Load reads numfu.yaml from configPath, or from the NUMFU_CONFIG
// environment variable, or from ./numfu.yaml if neither is set. A
// missing file is not an error: Load returns Defaults().
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path := resolveConfigPath(configPath, getenv)
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		cfg.BaseDir = filepath.Dir(absPath)
	}
	if cfg.StdlibPath != "" && cfg.BaseDir != "" && !filepath.IsAbs(cfg.StdlibPath) {
		cfg.StdlibPath = filepath.Join(cfg.BaseDir, cfg.StdlibPath)
	}
	return cfg, nil
}

func resolveConfigPath(explicit string, getenv func(string) string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if envPath := getenv("NUMFU_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	if _, err := os.Stat("numfu.yaml"); err == nil {
		return "numfu.yaml"
	}
	return ""
}
