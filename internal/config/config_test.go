package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewer.Theme != "light" {
		t.Errorf("default theme = %q, want light", cfg.Viewer.Theme)
	}
	if cfg.Viewer.Width != 800 || cfg.Viewer.Height != 600 {
		t.Errorf("default dimensions = %dx%d, want 800x600", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.ChargeStrength != -10 {
		t.Errorf("default charge = %v, want -10", cfg.Viewer.ChargeStrength)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Viewer.Theme != Default().Viewer.Theme {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[viewer]
theme = "dark"
charge_strength = -30.0

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[server]
addr = ":9000"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Viewer.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.Viewer.Theme)
	}
	if cfg.Viewer.ChargeStrength != -30 {
		t.Errorf("charge = %v, want -30", cfg.Viewer.ChargeStrength)
	}
	// Fields absent from the file keep defaults.
	if cfg.Viewer.Width != 800 {
		t.Errorf("width = %d, want default 800", cfg.Viewer.Width)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad toml",
			content: "[viewer\ntheme=",
			wantErr: "parse config",
		},
		{
			name:    "unknown theme",
			content: "[viewer]\ntheme = \"neon\"",
			wantErr: "unknown viewer theme",
		},
		{
			name:    "unknown backend",
			content: "[cache]\nbackend = \"memcached\"",
			wantErr: "unknown cache backend",
		},
		{
			name:    "redis without addr",
			content: "[cache]\nbackend = \"redis\"",
			wantErr: "requires redis_addr",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPathXDG(t *testing.T) {
	old := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	defer func() {
		if old != "" {
			os.Setenv("XDG_CONFIG_HOME", old)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
