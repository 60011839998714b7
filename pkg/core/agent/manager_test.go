package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingProvider struct {
	options map[string]interface{}
	system  string
}

func (p *recordingProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	p.options = options
	p.system = systemPrompt
	return "ok:" + prompt, nil
}

func (p *recordingProvider) AdaptInstructions(raw string) string {
	return "adapted:" + raw
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	yaml := "active_provider: gemini\nagents:\n  commentary:\n    provider: deepseek\n    model: deepseek-chat\n    temperature: 0.3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	want := Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"commentary": {Provider: "deepseek", Model: "deepseek-chat", Temperature: 0.3},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	missing, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil || missing.ActiveProvider != ProviderOffline {
		t.Errorf("missing file should give offline config, got %+v (%v)", missing, err)
	}
}

func TestRouting(t *testing.T) {
	m := NewManager(Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"commentary": {Provider: "deepseek"},
			"broken":     {Provider: "nope"},
		},
	}, Credentials{})

	tests := map[string]string{
		"commentary": "deepseek",
		"broken":     "gemini",
		"other":      "gemini",
	}
	for agentType, want := range tests {
		if got := m.ProviderName(agentType); got != want {
			t.Errorf("ProviderName(%s) = %s, want %s", agentType, got, want)
		}
	}

	if err := m.SetGlobalProvider("missing"); err == nil {
		t.Error("expected error for unknown provider")
	}
	if err := m.SetGlobalProvider(ProviderOffline); err != nil {
		t.Fatalf("SetGlobalProvider: %v", err)
	}
	if got := m.ProviderName("other"); got != ProviderOffline {
		t.Errorf("after switch ProviderName = %s", got)
	}
}

func TestExecutePrompt(t *testing.T) {
	rec := &recordingProvider{}
	m := NewManager(Config{
		ActiveProvider: "recorder",
		Agents:         map[string]AgentConfig{"commentary": {Model: "m1", Temperature: 0.4}},
	}, Credentials{})
	m.Register("recorder", rec)

	got, err := m.ExecutePrompt(context.Background(), "commentary", "hello", "be brief")
	if err != nil {
		t.Fatalf("ExecutePrompt: %v", err)
	}
	if got != "ok:hello" {
		t.Errorf("answer = %q", got)
	}
	if rec.system != "adapted:be brief" {
		t.Errorf("system prompt = %q", rec.system)
	}
	if rec.options["model"] != "m1" || rec.options["temperature"] != 0.4 {
		t.Errorf("options = %v", rec.options)
	}
}

func TestProviders(t *testing.T) {
	m := NewManager(Config{}, Credentials{})
	want := []string{"deepseek", "gemini", "generative-ai", "offline"}
	if diff := cmp.Diff(want, m.Providers()); diff != "" {
		t.Errorf("Providers() mismatch (-want +got):\n%s", diff)
	}
	if m.ProviderName("commentary") != ProviderOffline {
		t.Error("empty config should route to offline")
	}
}

func TestShippedConfigFollowsSwitch(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "..", "config", "models.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	m := NewManager(cfg, Credentials{})

	if got := m.ProviderName("commentary"); got != ProviderOffline {
		t.Errorf("commentary provider = %s, want %s", got, ProviderOffline)
	}
	if err := m.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("SetGlobalProvider error: %v", err)
	}
	if got := m.ProviderName("commentary"); got != "deepseek" {
		t.Errorf("commentary provider after switch = %s, want deepseek", got)
	}
}
