package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/config"
)

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(home, "config.json"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromFirstRunWritesTemplate(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Shelf.RequiredTime != config.DefaultRequiredTime {
		t.Errorf("RequiredTime = %s", cfg.Shelf.RequiredTime)
	}
	if cfg.Home != home {
		t.Errorf("Home = %q, want %q", cfg.Home, home)
	}
	if _, err := os.Stat(filepath.Join(home, "config.json")); err != nil {
		t.Fatalf("template not written: %v", err)
	}

	// The written template must parse back to the same settings.
	again, err := config.LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom template: %v", err)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("template config = %+v, want %+v", again, cfg)
	}
}

func TestLoadFromCommentsAndPartialFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `// my settings
{
  // daily goal
  "shelf": {"required_time": "45m", "show_failed_books": true}
}`)

	cfg, err := config.LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Shelf.RequiredTime.Seconds() != 2700 {
		t.Errorf("RequiredTime = %s, want 45m", cfg.Shelf.RequiredTime)
	}
	if !cfg.Shelf.ShowFailedBooks {
		t.Error("ShowFailedBooks not read")
	}
	if cfg.Timer.DefaultTarget != config.DefaultTarget {
		t.Errorf("DefaultTarget = %s, want default", cfg.Timer.DefaultTarget)
	}
	want := []int64{900, 1800, 2700, 3600, 5400, 7200}
	if got := cfg.TargetSeconds(); !reflect.DeepEqual(got, want) {
		t.Errorf("TargetSeconds = %v, want %v", got, want)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `{"shelf": {"required_time": "45m"}, "log_level": "info"}`)
	t.Setenv("SHELF_REQUIRED_TIME", "1h")
	t.Setenv("SHELF_DEFAULT_TARGET", "25m")
	t.Setenv("SHELF_SHOW_FAILED_BOOKS", "true")
	t.Setenv("SHELF_LOG_LEVEL", "debug")

	cfg, err := config.LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if time.Duration(cfg.Shelf.RequiredTime) != time.Hour {
		t.Errorf("RequiredTime = %s, want 1h", cfg.Shelf.RequiredTime)
	}
	if cfg.Timer.DefaultTarget.Seconds() != 1500 {
		t.Errorf("DefaultTarget = %s, want 25m", cfg.Timer.DefaultTarget)
	}
	if !cfg.Shelf.ShowFailedBooks || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadUsesShelfHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SHELF_HOME", home)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Home != home {
		t.Errorf("Home = %q, want %q", cfg.Home, home)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"negative required", `{"shelf": {"required_time": "-5m"}}`, config.ErrInvalidDuration},
		{"negative target", `{"timer": {"targets": ["30m", "-1m"]}}`, config.ErrInvalidDuration},
		{"bad level", `{"log_level": "loud"}`, config.ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, tt.body)
			_, err := config.LoadFrom(home)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFromMalformed(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `{"shelf": {"required_time": "soon"}}`)
	if _, err := config.LoadFrom(home); err == nil {
		t.Fatal("expected a parse error")
	}
}
