// Package agent routes each LLM task ("commentary", ...) to a provider
// according to config/models.yaml.
package agent

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/finnegil-spec/orbital-roi/pkg/core/llm"
	"gopkg.in/yaml.v2"
)

// ProviderOffline is the provider used when nothing else is configured.
const ProviderOffline = "offline"

type Config struct {
	ActiveProvider string                 `yaml:"active_provider" json:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents" json:"agents"`
}

type AgentConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // Optional override
	Model       string  `yaml:"model" json:"model,omitempty"`
	Temperature float64 `yaml:"temperature" json:"temperature,omitempty"`
	Description string  `yaml:"description" json:"description"`
}

// Credentials are handed to the remote providers at construction time.
type Credentials struct {
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig reads a models.yaml file. A missing file yields the offline
// default so the tools work without any configuration.
func LoadConfig(path string) (Config, error) {
	cfg := Config{ActiveProvider: ProviderOffline}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[AGENT] %s not found, using %s provider", path, ProviderOffline)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read model config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse model config: %w", err)
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = ProviderOffline
	}
	return cfg, nil
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config, creds Credentials) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			ProviderOffline: &llm.OfflineProvider{},
			"gemini":        &llm.GeminiProvider{APIKey: creds.GeminiAPIKey, Model: creds.GeminiModel},
			"generative-ai": &llm.GenerativeAIProvider{APIKey: creds.GeminiAPIKey, Model: creds.GeminiModel},
			"deepseek":      llm.NewDeepSeekProvider(),
		},
	}
}

// Register adds or replaces a named provider.
func (m *Manager) Register(name string, p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = p
}

// ProviderName resolves which provider serves agentType.
func (m *Manager) ProviderName(agentType string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providerNameLocked(agentType)
}

func (m *Manager) providerNameLocked(agentType string) string {
	// 1. Agent-specific override
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if _, ok := m.providers[agentConfig.Provider]; ok {
			return agentConfig.Provider
		}
	}

	// 2. Global active provider
	if _, ok := m.providers[m.config.ActiveProvider]; ok {
		return m.config.ActiveProvider
	}

	// 3. Fallback
	return ProviderOffline
}

func (m *Manager) GetProvider(agentType string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[m.providerNameLocked(agentType)]
}

// ExecutePrompt adapts the system prompt for the routed provider and runs it
// with the agent's model settings.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string) (string, error) {
	m.mu.RLock()
	name := m.providerNameLocked(agentType)
	provider := m.providers[name]
	agentConfig := m.config.Agents[agentType]
	m.mu.RUnlock()

	options := map[string]interface{}{}
	if agentConfig.Model != "" {
		options[llm.OptionModel] = agentConfig.Model
	}
	if agentConfig.Temperature > 0 {
		options[llm.OptionTemperature] = agentConfig.Temperature
	}

	log.Printf("[AGENT] %s -> %s", agentType, name)
	return provider.GenerateResponse(ctx, rawPrompt, provider.AdaptInstructions(rawSystemPrompt), options)
}

// SetGlobalProvider changes the active provider. Agents with their own
// provider override keep it.
func (m *Manager) SetGlobalProvider(newProvider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	log.Printf("[AGENT] global provider set to: %s", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Providers lists the registered provider names.
func (m *Manager) Providers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config returns a copy of the routing configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := Config{ActiveProvider: m.config.ActiveProvider, Agents: make(map[string]AgentConfig, len(m.config.Agents))}
	for k, v := range m.config.Agents {
		cfg.Agents[k] = v
	}
	return cfg
}
