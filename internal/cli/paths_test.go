package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestCacheDir(t *testing.T) {
	withEnv(t, "XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	withEnv(t, "XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestWorkspaceDir(t *testing.T) {
	withEnv(t, "XDG_CONFIG_HOME", "")

	dir, err := workspaceDir()
	if err != nil {
		t.Fatalf("workspaceDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", appName, "workspaces")
	if dir != want {
		t.Errorf("workspaceDir() = %q, want %q", dir, want)
	}
}

func TestWorkspaceDirXDG(t *testing.T) {
	withEnv(t, "XDG_CONFIG_HOME", "/tmp/custom-config")

	dir, err := workspaceDir()
	if err != nil {
		t.Fatalf("workspaceDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-config", appName, "workspaces")
	if dir != want {
		t.Errorf("workspaceDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}
}
