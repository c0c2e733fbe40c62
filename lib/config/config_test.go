// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://localhost:8900" {
		t.Errorf("expected base_url=http://localhost:8900, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout() != 15*time.Second {
		t.Errorf("expected request_timeout=15s, got %s", cfg.API.Timeout())
	}
	if cfg.Drafts.Disabled {
		t.Error("expected drafts enabled by default")
	}
}

func TestLoadRequiresChatwrightConfig(t *testing.T) {
	original := os.Getenv("CHATWRIGHT_CONFIG")
	defer os.Setenv("CHATWRIGHT_CONFIG", original)

	os.Unsetenv("CHATWRIGHT_CONFIG")
	if _, err := Load(); err == nil {
		t.Fatal("Load without CHATWRIGHT_CONFIG = nil, want error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatwright.yaml")
	content := `
environment: staging
api:
  base_url: https://console.internal:8900
  token: tok123
drafts:
  dir: /tmp/drafts
staging:
  api:
    base_url: https://staging-console.internal:8900
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "https://staging-console.internal:8900" {
		t.Errorf("staging override not applied: base_url = %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "tok123" {
		t.Errorf("token = %s", cfg.API.Token)
	}
	if cfg.Drafts.Dir != "/tmp/drafts" {
		t.Errorf("drafts dir = %s", cfg.Drafts.Dir)
	}
	if cfg.API.Timeout() != 15*time.Second {
		t.Errorf("unset timeout should keep the default, got %s", cfg.API.Timeout())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadFile of missing file = nil, want error")
	}
}
