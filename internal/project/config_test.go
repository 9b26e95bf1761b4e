package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "src", "main", "java")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("FindConfig = %q, want %q", got, want)
	}
	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %q %v %v", dir, ok, err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[format]
indent_width = 2
use_tabs = false

[trace]
level = " phase "
output = "trace.ndjson"

[run]
jobs = 3
exclude = ["*Generated.java"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format.IndentWidth != 2 || cfg.Format.UseTabs == nil || *cfg.Format.UseTabs {
		t.Errorf("format = %+v", cfg.Format)
	}
	if cfg.Trace.Level != "phase" || cfg.Trace.Output != "trace.ndjson" {
		t.Errorf("trace = %+v", cfg.Trace)
	}
	if cfg.Run.Jobs != 3 || len(cfg.Run.Exclude) != 1 {
		t.Errorf("run = %+v", cfg.Run)
	}
	if cfg.Path != path {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		bad     bool
		want    string
	}{
		{"unknown key", "[format]\nwidth = 2\n", true, "format.width"},
		{"negative jobs", "[run]\njobs = -1\n", true, "jobs"},
		{"negative indent", "[format]\nindent_width = -4\n", true, "indent_width"},
		{"syntax", "[format\n", false, "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, t.TempDir(), tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrBadConfig) != tt.bad {
				t.Errorf("errors.Is(ErrBadConfig) = %v for %v", !tt.bad, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWithoutConfig(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.Run.Jobs != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}
