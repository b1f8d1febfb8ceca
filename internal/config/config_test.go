package config

import (
	"os"
	"path/filepath"
	"testing"
)

// #region config-tests
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg.FPS != def.FPS {
		t.Errorf("expected default fps %v, got %v", def.FPS, cfg.FPS)
	}
	if cfg.DBPath != def.DBPath {
		t.Errorf("expected default db path %s, got %s", def.DBPath, cfg.DBPath)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("user_id: dana\nfps: 15\nserver_addr: \":8080\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UserID != "dana" {
		t.Errorf("expected user_id dana, got %s", cfg.UserID)
	}
	if cfg.FPS != 15 {
		t.Errorf("expected fps 15, got %v", cfg.FPS)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.ServerAddr)
	}
	// Untouched fields keep defaults.
	if cfg.ReportIntervalSeconds != 2.0 {
		t.Errorf("expected default report interval, got %v", cfg.ReportIntervalSeconds)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STUDY_USER_ID", "env-user")
	t.Setenv("STUDY_FPS", "24")
	t.Setenv("STUDY_REPORT_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UserID != "env-user" {
		t.Errorf("expected env-user, got %s", cfg.UserID)
	}
	if cfg.FPS != 24 {
		t.Errorf("expected fps 24, got %v", cfg.FPS)
	}
	if cfg.ReportEnabled {
		t.Error("expected reporting disabled via env")
	}
}

func TestLoad_BadEnvNumberIgnored(t *testing.T) {
	t.Setenv("STUDY_FPS", "fast")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != Default().FPS {
		t.Errorf("expected default fps kept, got %v", cfg.FPS)
	}
}

// #endregion config-tests
