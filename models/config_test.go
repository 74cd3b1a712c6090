package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MaxPriorityURLs != 15 {
		t.Errorf("MaxPriorityURLs = %d, want 15", cfg.MaxPriorityURLs)
	}
	if cfg.MainContentCap != 8000 || cfg.PageContentCap != 4000 {
		t.Errorf("content caps = %d/%d, want 8000/4000", cfg.MainContentCap, cfg.PageContentCap)
	}
	if cfg.Generator.Provider != "ollama" {
		t.Errorf("provider = %q, want ollama", cfg.Generator.Provider)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
sites:
  - https://a.com
  - https://b.com
max_priority_urls: 5
output_dir: custom-out
page_timeout: 30s
generator:
  provider: cloud
  cloud:
    endpoint: https://api.example.com/v1/chat/completions
    model: gpt-4o-mini
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Sites) != 2 || cfg.Sites[0] != "https://a.com" {
		t.Errorf("Sites = %v", cfg.Sites)
	}
	if cfg.MaxPriorityURLs != 5 {
		t.Errorf("MaxPriorityURLs = %d, want 5", cfg.MaxPriorityURLs)
	}
	if cfg.OutputDir != "custom-out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.PageTimeout.Std() != 30*time.Second {
		t.Errorf("PageTimeout = %v", cfg.PageTimeout)
	}
	if cfg.Generator.Provider != "cloud" || cfg.Generator.Cloud.Model != "gpt-4o-mini" {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	// Untouched defaults survive a partial file.
	if cfg.MainContentCap != 8000 {
		t.Errorf("MainContentCap = %d, want default 8000", cfg.MainContentCap)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() succeeded for missing file")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad provider", "generator:\n  provider: smoke-signals\n"},
		{"cloud without endpoint", "generator:\n  provider: cloud\n"},
		{"negative max urls", "max_priority_urls: -1\n"},
		{"bad duration", "page_timeout: soon\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() accepted invalid config")
			}
		})
	}
}
