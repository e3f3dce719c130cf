package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pitchperfect/internal/platform/config"
)

func TestNewDerivesWorkspaceLayout(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/work")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.CustomersDir != filepath.Join("/work", "customers") {
		t.Fatalf("unexpected customers dir %s", cfg.CustomersDir)
	}
	if cfg.ResponseEvaluationsDir != filepath.Join("/work", "meetings", "response_evaluations") {
		t.Fatalf("unexpected evaluations dir %s", cfg.ResponseEvaluationsDir)
	}
	if cfg.DBPath != filepath.Join("/work", ".pitch", "pitch.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.ReportPolicy != config.ReportPolicyVendorOnly {
		t.Fatalf("vendor-only report policy must be the default, got %s", cfg.ReportPolicy)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty workspace must fail")
	}
}

func TestLoadReadsEnvironmentAndFile(t *testing.T) {
	workspace := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workspace, ".pitch"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := "report_policy: transcript\nmodels:\n  chat:\n    model: claude-test\n    temperature: 0.2\n"
	if err := os.WriteFile(filepath.Join(workspace, ".pitch", "config.yaml"), []byte(file), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PITCH_PROVIDER", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PITCH_LLM_TIMEOUT", "30s")

	cfg, err := config.Load(workspace)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Provider != config.ProviderOpenAI || cfg.APIKey != "sk-test" {
		t.Fatalf("expected openai auto-detected, got %q", cfg.Provider)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.ReportPolicy != config.ReportPolicyTranscript {
		t.Fatalf("expected transcript policy, got %s", cfg.ReportPolicy)
	}
	chat := cfg.Models["chat"]
	if chat.Model != "claude-test" || chat.Temperature == nil || *chat.Temperature != 0.2 {
		t.Fatalf("unexpected chat override %+v", chat)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("PITCH_PROVIDER", "carrier-pigeon")
	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatalf("unknown provider must fail")
	}
}

func TestLoadWithoutKeysLeavesProviderEmpty(t *testing.T) {
	t.Setenv("PITCH_PROVIDER", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Provider != "" {
		t.Fatalf("expected no provider, got %q", cfg.Provider)
	}
}
