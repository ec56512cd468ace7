package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_RETENTION_WEEKS",
		"DATA_DIR", "OUT_DIR", "ABS_FILE", "CORE_FILE", "SJR_FILE",
		"ABS_URL", "CORE_URL", "SJR_URL", "REFRESH_AT",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.RefreshAt != "06:00" {
		t.Errorf("RefreshAt = %q, want 06:00", cfg.RefreshAt)
	}
	if cfg.ABSFile != "ABS-2024.csv" {
		t.Errorf("ABSFile = %q, want ABS-2024.csv", cfg.ABSFile)
	}
	if cfg.SJRFile != "scimagojr 2024.csv" {
		t.Errorf("SJRFile = %q, want 'scimagojr 2024.csv'", cfg.SJRFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/srv/rankings")
	t.Setenv("REFRESH_AT", "23:30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if got := cfg.CorePath(); got != filepath.Join("/srv/rankings", "full_CORE.csv") {
		t.Errorf("CorePath() = %q", got)
	}
	if cfg.RefreshAt != "23:30" {
		t.Errorf("RefreshAt = %q, want 23:30", cfg.RefreshAt)
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    string
		wantErr bool
	}{
		{"8000", false},
		{"1024", false},
		{"65535", false},
		{"80", true},
		{"0", true},
		{"65536", true},
		{"abc", true},
		{"", true},
	}

	for _, tc := range tests {
		err := validatePort(tc.port)
		if (err != nil) != tc.wantErr {
			t.Errorf("validatePort(%q) error = %v, wantErr %v", tc.port, err, tc.wantErr)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	for _, addr := range []string{"127.0.0.1", "localhost", "::1", "0.0.0.0", "192.168.1.10"} {
		if err := validateAddress(addr); err != nil {
			t.Errorf("validateAddress(%q) unexpected error: %v", addr, err)
		}
	}
	for _, addr := range []string{"", "not-an-ip", "999.1.1.1"} {
		if err := validateAddress(addr); err == nil {
			t.Errorf("validateAddress(%q) expected an error", addr)
		}
	}
}

func TestValidateRefreshAt(t *testing.T) {
	for _, at := range []string{"06:00", "00:00", "23:59"} {
		if err := validateRefreshAt(at); err != nil {
			t.Errorf("validateRefreshAt(%q) unexpected error: %v", at, err)
		}
	}
	for _, at := range []string{"24:00", "6am", "06:60", ""} {
		if err := validateRefreshAt(at); err == nil {
			t.Errorf("validateRefreshAt(%q) expected an error", at)
		}
	}
}

func TestLoadRejectsInvalidRefreshAt(t *testing.T) {
	t.Setenv("REFRESH_AT", "25:00")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an invalid REFRESH_AT")
	} else if !strings.Contains(err.Error(), "REFRESH_AT") {
		t.Errorf("Error should name the offending variable, got: %v", err)
	}
}

func TestLoadRejectsEmptyDataFile(t *testing.T) {
	t.Setenv("CORE_FILE", "   ")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an empty CORE_FILE")
	}
}

func TestDownloadTargets(t *testing.T) {
	t.Setenv("CORE_URL", "https://example.org/core.csv")
	t.Setenv("SJR_URL", "https://example.org/sjr.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	targets := cfg.DownloadTargets()
	if len(targets) != 2 {
		t.Fatalf("Expected 2 download targets, got %d: %v", len(targets), targets)
	}
	if targets[cfg.CoreFile] != "https://example.org/core.csv" {
		t.Errorf("CORE target = %q", targets[cfg.CoreFile])
	}
	if _, ok := targets[cfg.ABSFile]; ok {
		t.Error("ABS should have no download target without ABS_URL")
	}
}
