package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLEANHARBOR_DB_NAME", "testdb")
	t.Setenv("CLEANHARBOR_DB_USER", "testuser")
	t.Setenv("CLEANHARBOR_STORAGE_CONNECTION_STRING", "test-connection")
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"server addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"api base path", cfg.API.BasePath, "/api"},
		{"stale after", cfg.API.StaleAfterDuration(), 15 * time.Minute},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(50 * 1024 * 1024)},
		{"agent name", cfg.Agent.Name, "cleanharbor"},
		{"engine pool size", cfg.Engine.PoolSize, 4},
		{"version", cfg.Version, "0.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)
	t.Setenv("CLEANHARBOR_API_STALE_AFTER", "30m")
	t.Setenv("CLEANHARBOR_AGENT_MODEL_NAME", "gpt-4o")
	t.Setenv("CLEANHARBOR_ENGINE_POOL_SIZE", "6")
	t.Setenv("CLEANHARBOR_VERSION", "1.2.3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.API.StaleAfterDuration() != 30*time.Minute {
		t.Errorf("stale after = %v, want 30m", cfg.API.StaleAfterDuration())
	}
	if cfg.Agent.Model.Name != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Agent.Model.Name)
	}
	if cfg.Engine.PoolSize != 6 {
		t.Errorf("pool size = %d, want 6", cfg.Engine.PoolSize)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", cfg.Version)
	}
}

func TestLoadTOMLWithOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setRequiredEnv(t)

	base := `
version = "2.0.0"

[server]
port = 9090

[api]
stale_after = "1h"

[engine]
pool_size = 8
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(base), 0o644); err != nil {
		t.Fatal(err)
	}

	overlay := `
[api]
stale_after = "45m"
`
	if err := os.WriteFile(filepath.Join(dir, "config.test.toml"), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLEANHARBOR_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("addr = %q, want 0.0.0.0:9090", cfg.Server.Addr())
	}
	if cfg.Version != "2.0.0" {
		t.Errorf("version = %q, want 2.0.0", cfg.Version)
	}
	if cfg.Engine.PoolSize != 8 {
		t.Errorf("pool size = %d, want 8", cfg.Engine.PoolSize)
	}
	if cfg.API.StaleAfterDuration() != 45*time.Minute {
		t.Errorf("overlay stale_after should win, got %v", cfg.API.StaleAfterDuration())
	}
}

func TestLoadInvalidStaleAfter(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)
	t.Setenv("CLEANHARBOR_API_STALE_AFTER", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid stale_after")
	}
}

func TestAgentBuild(t *testing.T) {
	t.Setenv("CLEANHARBOR_AGENT_TOKEN", "secret")

	agent := AgentConfig{
		Provider: AgentProviderConfig{
			Name:    "azure",
			BaseURL: "https://example.openai.azure.com",
		},
		Model: AgentModelConfig{Name: "gpt-4o"},
	}
	if err := agent.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	built := agent.Build()
	if built.Name != "cleanharbor" {
		t.Errorf("name = %q, want cleanharbor", built.Name)
	}
	if built.Provider.Name != "azure" {
		t.Errorf("provider = %q, want azure", built.Provider.Name)
	}
	if built.Model.Name != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", built.Model.Name)
	}
	if built.Provider.Options["token"] != "secret" {
		t.Error("token option should come from environment")
	}
}
