package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("EXCEL_FILE", "")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("DASH_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.Server.GinMode)
	}
	if cfg.Paths.ExcelFile != DefaultWorkbook {
		t.Errorf("ExcelFile = %q, want %q", cfg.Paths.ExcelFile, DefaultWorkbook)
	}
	if cfg.Auth.Password != "" {
		t.Errorf("Password = %q, want empty", cfg.Auth.Password)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXCEL_FILE", "custom.xlsx")
	t.Setenv("DASH_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Paths.ExcelFile != "custom.xlsx" {
		t.Errorf("ExcelFile = %q, want custom.xlsx", cfg.Paths.ExcelFile)
	}
	if cfg.Auth.Password != "secret" {
		t.Errorf("Password not picked up from environment")
	}
}

func TestLoadRejectsNonNumericPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("Expected validation error for non-numeric port")
	}
}
