package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Ledger.Path != "output/output.json" {
		t.Fatalf("unexpected default ledger path %q", cfg.Ledger.Path)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Fatalf("expected default provider openai, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.MaxRetries != 3 {
		t.Fatalf("expected default max_retries 3, got %d", cfg.LLM.MaxRetries)
	}
	if !cfg.Acquire.HeadlessEnabled {
		t.Fatal("expected headless enabled by default")
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
ledger:
  path: /var/lib/newsminer/output.json
acquire:
  user_agent: custom-agent
  headless_enabled: false
  nav_timeout_seconds: 30
  http_timeout_seconds: 20
llm:
  provider: gemini
  model: gemini-2.0-flash
  api_key: secret
  timeout_seconds: 30
  max_retries: 1
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Ledger.Path != "/var/lib/newsminer/output.json" {
		t.Fatalf("unexpected ledger path %q", cfg.Ledger.Path)
	}
	if cfg.Acquire.HeadlessEnabled {
		t.Fatal("expected headless disabled")
	}
	if cfg.LLM.Provider != ProviderGemini || cfg.LLM.Model != "gemini-2.0-flash" {
		t.Fatalf("expected gemini overrides to apply, got %+v", cfg.LLM)
	}
	if cfg.Logging.Development {
		t.Fatal("expected production logging")
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  provider: claude\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "llm.provider") {
		t.Fatalf("expected provider validation error, got %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Config{
		Acquire: AcquireConfig{NavTimeoutSec: 45, SettleMs: 500, HTTPTimeoutSec: 15},
		LLM:     LLMConfig{TimeoutSec: 20},
	}
	if cfg.Acquire.NavTimeout().Seconds() != 45 {
		t.Fatalf("unexpected nav timeout %v", cfg.Acquire.NavTimeout())
	}
	if cfg.Acquire.SettleDelay().Milliseconds() != 500 {
		t.Fatalf("unexpected settle delay %v", cfg.Acquire.SettleDelay())
	}
	if cfg.Acquire.HTTPTimeout().Seconds() != 15 {
		t.Fatalf("unexpected http timeout %v", cfg.Acquire.HTTPTimeout())
	}
	if cfg.LLM.Timeout().Seconds() != 20 {
		t.Fatalf("unexpected llm timeout %v", cfg.LLM.Timeout())
	}
}
