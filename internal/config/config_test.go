package config

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if *cfg != *want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numfu.yaml")
	yaml := "precision: 50\nrecDepth: 500\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Precision != 50 {
		t.Errorf("Precision = %d, want 50", cfg.Precision)
	}
	if cfg.RecDepth != 500 {
		t.Errorf("RecDepth = %d, want 500", cfg.RecDepth)
	}
	if cfg.IterDepth != Defaults().IterDepth {
		t.Errorf("IterDepth = %d, want unset default %d", cfg.IterDepth, Defaults().IterDepth)
	}
}

func TestLoadResolvesRelativeStdlibPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numfu.yaml")
	if err := os.WriteFile(path, []byte("stdlibPath: mystdlib\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(dir, "mystdlib")
	if cfg.StdlibPath != want {
		t.Errorf("StdlibPath = %q, want %q", cfg.StdlibPath, want)
	}
}

func TestLoadExplicitPathOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("precision: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	getenv := func(k string) string {
		if k == "NUMFU_CONFIG" {
			return filepath.Join(t.TempDir(), "unused.yaml")
		}
		return ""
	}
	cfg, err := Load(path, getenv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Precision != 10 {
		t.Errorf("Precision = %d, want 10 (explicit path should win over env)", cfg.Precision)
	}
}
