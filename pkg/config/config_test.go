package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(nil, "")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Format != "json" || cfg.Strategy != "shader" || !cfg.Attributes || cfg.Watch {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nodegraph.toml")
	content := "format = \"toml\"\nstrategy = \"tagtype\"\ninput = \"from-file.toml\"\nattributes = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("NODEGRAPH_STRATEGY", "never")
	t.Setenv("NODEGRAPH_JSON_LOGS", "true")

	flags := Flags("test")
	if err := flags.Parse([]string{"--input", "graph.yaml", "-vv"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := LoadFile(flags, path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Format != "toml" {
		t.Errorf("Expected format from file, got %q", cfg.Format)
	}
	if cfg.Attributes {
		t.Error("Expected attributes disabled by file")
	}
	if cfg.Strategy != "never" {
		t.Errorf("Expected env to override file, got %q", cfg.Strategy)
	}
	if !cfg.JSONLogs {
		t.Error("Expected NODEGRAPH_JSON_LOGS to enable json logs")
	}
	if cfg.Input != "graph.yaml" {
		t.Errorf("Expected flag to override file, got %q", cfg.Input)
	}
	if cfg.VerboseCnt != 2 {
		t.Errorf("Expected verbose count 2, got %d", cfg.VerboseCnt)
	}
}

func TestMissingConfigFileIsIgnored(t *testing.T) {
	cfg, err := LoadFile(nil, filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Expected default format, got %q", cfg.Format)
	}
}
